package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/users/user/dto"
	"skripsiku_backend/internals/features/users/user/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	List(ctx context.Context, q dto.ListUserQuery, limit, offset int) ([]model.UserModel, int64, error)
	ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error)
	Create(ctx context.Context, u *model.UserModel) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, url, key string) error
	ListIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, apperr.FromDB(err, "User tidak ditemukan")
	}
	return &u, nil
}

func (r *gormRepository) List(ctx context.Context, q dto.ListUserQuery, limit, offset int) ([]model.UserModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.UserModel{})
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR user_name LIKE ?", like, like, like)
	}
	if q.Role != "" {
		tx = tx.Where("role = ?", q.Role)
	}
	if q.Active != nil {
		tx = tx.Where("is_active = ?", *q.Active)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "")
	}
	var rows []model.UserModel
	if err := tx.Order("name ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "")
	}
	return rows, total, nil
}

func (r *gormRepository) ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE user_name = ? OR LOWER(email) = LOWER(?))`, userName, email).
		Scan(&exists).Error
	return exists, apperr.FromDB(err, "")
}

func (r *gormRepository) Create(ctx context.Context, u *model.UserModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(u).Error, "")
}

func (r *gormRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, url, key string) error {
	res := r.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"avatar_url": url, "avatar_key": key})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User tidak ditemukan")
	}
	return nil
}

func (r *gormRepository) ListIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("role = ? AND is_active = TRUE", role).
		Pluck("id", &ids).Error
	return ids, apperr.FromDB(err, "")
}
