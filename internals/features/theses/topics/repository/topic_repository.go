package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/theses/topics/dto"
	"skripsiku_backend/internals/features/theses/topics/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type Repository interface {
	List(ctx context.Context, q dto.ListTopicQuery, limit, offset int) ([]model.TopicModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.TopicModel, error)
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, m *model.TopicModel) error
	Save(ctx context.Context, m *model.TopicModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountThesisRefs(ctx context.Context, id uuid.UUID) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, q dto.ListTopicQuery, limit, offset int) ([]model.TopicModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.TopicModel{})
	if s := strings.TrimSpace(q.Q); s != "" {
		tx = tx.Where("LOWER(topic_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if q.Active != nil {
		tx = tx.Where("topic_is_active = ?", *q.Active)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "")
	}
	var rows []model.TopicModel
	err := tx.Order("topic_name ASC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, apperr.FromDB(err, "")
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TopicModel, error) {
	var m model.TopicModel
	if err := r.db.WithContext(ctx).Where("topic_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, "Topik tidak ditemukan")
	}
	return &m, nil
}

func (r *gormRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&model.TopicModel{}).Where("LOWER(topic_name) = LOWER(?)", name)
	if excludeID != uuid.Nil {
		tx = tx.Where("topic_id <> ?", excludeID)
	}
	if err := tx.Count(&n).Error; err != nil {
		return false, apperr.FromDB(err, "")
	}
	return n > 0, nil
}

func (r *gormRepository) Create(ctx context.Context, m *model.TopicModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(m).Error, "")
}

func (r *gormRepository) Save(ctx context.Context, m *model.TopicModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Save(m).Error, "")
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("topic_id = ?", id).Delete(&model.TopicModel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Topik tidak ditemukan")
	}
	return nil
}

func (r *gormRepository) CountThesisRefs(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("theses").Where("thesis_topic_id = ?", id).Count(&n).Error
	return n, apperr.FromDB(err, "")
}
