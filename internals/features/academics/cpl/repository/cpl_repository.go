package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/academics/cpl/dto"
	"skripsiku_backend/internals/features/academics/cpl/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type Repository interface {
	List(ctx context.Context, q dto.ListCplQuery, limit, offset int) ([]model.CplModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CplModel, error)
	CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, m *model.CplModel) error
	Save(ctx context.Context, m *model.CplModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountCpmkRefs(ctx context.Context, id uuid.UUID) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, q dto.ListCplQuery, limit, offset int) ([]model.CplModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.CplModel{})
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(cpl_code) LIKE ? OR LOWER(cpl_description) LIKE ?", like, like)
	}
	if q.Active != nil {
		tx = tx.Where("cpl_is_active = ?", *q.Active)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "")
	}
	var rows []model.CplModel
	err := tx.Order("cpl_code ASC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, apperr.FromDB(err, "")
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CplModel, error) {
	var m model.CplModel
	if err := r.db.WithContext(ctx).Where("cpl_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, "CPL tidak ditemukan")
	}
	return &m, nil
}

func (r *gormRepository) CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&model.CplModel{}).Where("UPPER(cpl_code) = UPPER(?)", code)
	if excludeID != uuid.Nil {
		tx = tx.Where("cpl_id <> ?", excludeID)
	}
	err := tx.Count(&n).Error
	return n > 0, apperr.FromDB(err, "")
}

func (r *gormRepository) Create(ctx context.Context, m *model.CplModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(m).Error, "")
}

func (r *gormRepository) Save(ctx context.Context, m *model.CplModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Save(m).Error, "")
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("cpl_id = ?", id).Delete(&model.CplModel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("CPL tidak ditemukan")
	}
	return nil
}

func (r *gormRepository) CountCpmkRefs(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("cpmk").Where("cpmk_cpl_id = ?", id).Count(&n).Error
	return n, apperr.FromDB(err, "")
}
