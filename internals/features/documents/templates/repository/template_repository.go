package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/documents/templates/dto"
	"skripsiku_backend/internals/features/documents/templates/model"
	"skripsiku_backend/internals/helpers/apperr"
)

const notFoundMsg = "Template dokumen tidak ditemukan"

type Repository interface {
	List(ctx context.Context, q dto.ListTemplateQuery) ([]model.TemplateModel, error)
	FindByKey(ctx context.Context, key string) (*model.TemplateModel, error)
	KeyExists(ctx context.Context, key string) (bool, error)
	Create(ctx context.Context, m *model.TemplateModel) error
	Save(ctx context.Context, m *model.TemplateModel) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateGeneration(ctx context.Context, g *model.GenerationModel) error
	ListGenerations(ctx context.Context, templateID uuid.UUID, limit, offset int) ([]model.GenerationModel, int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, q dto.ListTemplateQuery) ([]model.TemplateModel, error) {
	tx := r.db.WithContext(ctx).Model(&model.TemplateModel{})
	if q.Kind != "" {
		tx = tx.Where("template_kind = ?", q.Kind)
	}
	if q.Active != nil {
		tx = tx.Where("template_is_active = ?", *q.Active)
	}
	var rows []model.TemplateModel
	err := tx.Order("template_name ASC").Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}

func (r *gormRepository) FindByKey(ctx context.Context, key string) (*model.TemplateModel, error) {
	var m model.TemplateModel
	if err := r.db.WithContext(ctx).Where("template_key = ?", key).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMsg)
	}
	return &m, nil
}

func (r *gormRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.TemplateModel{}).Where("template_key = ?", key).Count(&n).Error
	return n > 0, apperr.FromDB(err, "")
}

func (r *gormRepository) Create(ctx context.Context, m *model.TemplateModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(m).Error, "")
}

func (r *gormRepository) Save(ctx context.Context, m *model.TemplateModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Save(m).Error, "")
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("template_id = ?", id).Delete(&model.TemplateModel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(notFoundMsg)
	}
	return nil
}

func (r *gormRepository) CreateGeneration(ctx context.Context, g *model.GenerationModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(g).Error, "")
}

func (r *gormRepository) ListGenerations(ctx context.Context, templateID uuid.UUID, limit, offset int) ([]model.GenerationModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.GenerationModel{}).Where("generation_template_id = ?", templateID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "")
	}
	var rows []model.GenerationModel
	err := tx.Order("generation_created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, apperr.FromDB(err, "")
}
