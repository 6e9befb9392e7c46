package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skripsiku_backend/internals/features/yudisium/requirements/dto"
	"skripsiku_backend/internals/features/yudisium/requirements/model"
	"skripsiku_backend/internals/helpers/apperr"
)

const notFoundMsg = "Syarat yudisium tidak ditemukan"

type Repository interface {
	List(ctx context.Context, q dto.ListRequirementQuery) ([]model.RequirementModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.RequirementModel, error)
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	NextOrder(ctx context.Context) (int, error)
	Create(ctx context.Context, m *model.RequirementModel) error
	Save(ctx context.Context, m *model.RequirementModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	AllIDs(ctx context.Context) ([]uuid.UUID, error)
	SetOrder(ctx context.Context, id uuid.UUID, order int) error
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) List(ctx context.Context, q dto.ListRequirementQuery) ([]model.RequirementModel, error) {
	tx := r.db.WithContext(ctx).Model(&model.RequirementModel{})
	if q.Active != nil {
		tx = tx.Where("requirement_is_active = ?", *q.Active)
	}
	var rows []model.RequirementModel
	err := tx.Order("requirement_display_order ASC, requirement_name ASC").Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RequirementModel, error) {
	var m model.RequirementModel
	if err := r.db.WithContext(ctx).Where("requirement_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMsg)
	}
	return &m, nil
}

func (r *gormRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&model.RequirementModel{}).Where("LOWER(requirement_name) = LOWER(?)", name)
	if excludeID != uuid.Nil {
		tx = tx.Where("requirement_id <> ?", excludeID)
	}
	if err := tx.Count(&n).Error; err != nil {
		return false, apperr.FromDB(err, "")
	}
	return n > 0, nil
}

func (r *gormRepository) NextOrder(ctx context.Context) (int, error) {
	var maxOrder *int
	err := r.db.WithContext(ctx).Model(&model.RequirementModel{}).
		Select("MAX(requirement_display_order)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, apperr.FromDB(err, "")
	}
	if maxOrder == nil {
		return 1, nil
	}
	return *maxOrder + 1, nil
}

func (r *gormRepository) Create(ctx context.Context, m *model.RequirementModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(m).Error, "")
}

func (r *gormRepository) Save(ctx context.Context, m *model.RequirementModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Save(m).Error, "")
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("requirement_id = ?", id).Delete(&model.RequirementModel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(notFoundMsg)
	}
	return nil
}

// AllIDs mengunci seluruh baris (FOR UPDATE) selama transaksi reorder.
func (r *gormRepository) AllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.RequirementModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Pluck("requirement_id", &ids).Error
	return ids, apperr.FromDB(err, "")
}

func (r *gormRepository) SetOrder(ctx context.Context, id uuid.UUID, order int) error {
	return apperr.FromDB(r.db.WithContext(ctx).Model(&model.RequirementModel{}).
		Where("requirement_id = ?", id).
		Update("requirement_display_order", order).Error, "")
}
