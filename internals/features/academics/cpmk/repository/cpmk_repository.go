package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/academics/cpmk/dto"
	"skripsiku_backend/internals/features/academics/cpmk/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type Repository interface {
	List(ctx context.Context, q dto.ListCpmkQuery, limit, offset int) ([]model.CpmkModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CpmkModel, error)
	CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
	CplExists(ctx context.Context, cplID uuid.UUID) (bool, error)
	Create(ctx context.Context, m *model.CpmkModel) error
	Save(ctx context.Context, m *model.CpmkModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountCriteriaRefs(ctx context.Context, id uuid.UUID) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, q dto.ListCpmkQuery, limit, offset int) ([]model.CpmkModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.CpmkModel{})
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(cpmk_code) LIKE ? OR LOWER(cpmk_description) LIKE ?", like, like)
	}
	if q.Type != "" {
		tx = tx.Where("cpmk_type = ?", q.Type)
	}
	if q.Active != nil {
		tx = tx.Where("cpmk_is_active = ?", *q.Active)
	}
	if q.CplID != "" {
		tx = tx.Where("cpmk_cpl_id = ?", q.CplID)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "")
	}
	var rows []model.CpmkModel
	err := tx.Order("cpmk_code ASC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, apperr.FromDB(err, "")
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CpmkModel, error) {
	var m model.CpmkModel
	if err := r.db.WithContext(ctx).Where("cpmk_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, "CPMK tidak ditemukan")
	}
	return &m, nil
}

func (r *gormRepository) CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&model.CpmkModel{}).Where("UPPER(cpmk_code) = UPPER(?)", code)
	if excludeID != uuid.Nil {
		tx = tx.Where("cpmk_id <> ?", excludeID)
	}
	err := tx.Count(&n).Error
	return n > 0, apperr.FromDB(err, "")
}

func (r *gormRepository) CplExists(ctx context.Context, cplID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("cpl").Where("cpl_id = ?", cplID).Count(&n).Error
	return n > 0, apperr.FromDB(err, "")
}

func (r *gormRepository) Create(ctx context.Context, m *model.CpmkModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(m).Error, "")
}

func (r *gormRepository) Save(ctx context.Context, m *model.CpmkModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Save(m).Error, "")
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("cpmk_id = ?", id).Delete(&model.CpmkModel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("CPMK tidak ditemukan")
	}
	return nil
}

func (r *gormRepository) CountCriteriaRefs(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("assessment_criteria").Where("criteria_cpmk_id = ?", id).Count(&n).Error
	return n, apperr.FromDB(err, "")
}
