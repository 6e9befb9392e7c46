package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skripsiku_backend/internals/features/academics/academic_years/dto"
	"skripsiku_backend/internals/features/academics/academic_years/model"
	"skripsiku_backend/internals/helpers/apperr"
)

const notFoundMsg = "Tahun akademik tidak ditemukan"

type Repository interface {
	List(ctx context.Context, q dto.ListAcademicYearQuery, limit, offset int) ([]model.AcademicYearModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AcademicYearModel, error)
	FindActive(ctx context.Context) (*model.AcademicYearModel, error)
	PeriodExists(ctx context.Context, year, semester string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, m *model.AcademicYearModel) error
	Save(ctx context.Context, m *model.AcademicYearModel) error
	Activate(ctx context.Context, id uuid.UUID) (*model.AcademicYearModel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountThesisRefs(ctx context.Context, id uuid.UUID) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, q dto.ListAcademicYearQuery, limit, offset int) ([]model.AcademicYearModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.AcademicYearModel{})
	if y := strings.TrimSpace(q.Year); y != "" {
		tx = tx.Where("academic_year_year = ?", y)
	}
	if q.Semester != "" {
		tx = tx.Where("academic_year_semester = ?", q.Semester)
	}
	if q.Active != nil {
		tx = tx.Where("academic_year_is_active = ?", *q.Active)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "")
	}
	var rows []model.AcademicYearModel
	err := tx.Order("academic_year_start_date DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, apperr.FromDB(err, "")
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AcademicYearModel, error) {
	var m model.AcademicYearModel
	if err := r.db.WithContext(ctx).Where("academic_year_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMsg)
	}
	return &m, nil
}

func (r *gormRepository) FindActive(ctx context.Context) (*model.AcademicYearModel, error) {
	var m model.AcademicYearModel
	if err := r.db.WithContext(ctx).Where("academic_year_is_active = TRUE").Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, "Belum ada tahun akademik aktif")
	}
	return &m, nil
}

func (r *gormRepository) PeriodExists(ctx context.Context, year, semester string, excludeID uuid.UUID) (bool, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&model.AcademicYearModel{}).
		Where("academic_year_year = ? AND academic_year_semester = ?", year, semester)
	if excludeID != uuid.Nil {
		tx = tx.Where("academic_year_id <> ?", excludeID)
	}
	if err := tx.Count(&n).Error; err != nil {
		return false, apperr.FromDB(err, "")
	}
	return n > 0, nil
}

// Create: bila baris baru aktif, baris aktif lain dimatikan dalam transaksi yang sama.
func (r *gormRepository) Create(ctx context.Context, m *model.AcademicYearModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.AcademicYearIsActive {
			if err := deactivateAll(tx); err != nil {
				return err
			}
		}
		return apperr.FromDB(tx.Create(m).Error, "")
	})
}

func (r *gormRepository) Save(ctx context.Context, m *model.AcademicYearModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Save(m).Error, "")
}

func (r *gormRepository) Activate(ctx context.Context, id uuid.UUID) (*model.AcademicYearModel, error) {
	var m model.AcademicYearModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("academic_year_id = ?", id).Take(&m).Error; err != nil {
			return apperr.FromDB(err, notFoundMsg)
		}
		if m.AcademicYearIsActive {
			return nil
		}
		if err := deactivateAll(tx); err != nil {
			return err
		}
		if err := tx.Model(&m).Update("academic_year_is_active", true).Error; err != nil {
			return apperr.FromDB(err, "")
		}
		m.AcademicYearIsActive = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func deactivateAll(tx *gorm.DB) error {
	err := tx.Model(&model.AcademicYearModel{}).
		Where("academic_year_is_active = TRUE").
		Update("academic_year_is_active", false).Error
	return apperr.FromDB(err, "")
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("academic_year_id = ?", id).Delete(&model.AcademicYearModel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(notFoundMsg)
	}
	return nil
}

func (r *gormRepository) CountThesisRefs(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("theses").Where("thesis_academic_year_id = ?", id).Count(&n).Error
	return n, apperr.FromDB(err, "")
}
