package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/lecturers/availabilities/dto"
	"skripsiku_backend/internals/features/lecturers/availabilities/model"
	"skripsiku_backend/internals/helpers/apperr"
)

const notFoundMsg = "Jadwal dosen tidak ditemukan"

type Repository interface {
	ListByLecturer(ctx context.Context, lecturerID uuid.UUID, q dto.ListAvailabilityQuery) ([]model.AvailabilityModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AvailabilityModel, error)
	ActiveOnDay(ctx context.Context, lecturerID uuid.UUID, day int, excludeID uuid.UUID) ([]model.AvailabilityModel, error)
	LecturerExists(ctx context.Context, lecturerID uuid.UUID, roles []string) (bool, error)
	Create(ctx context.Context, m *model.AvailabilityModel) error
	Save(ctx context.Context, m *model.AvailabilityModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListByLecturer(ctx context.Context, lecturerID uuid.UUID, q dto.ListAvailabilityQuery) ([]model.AvailabilityModel, error) {
	tx := r.db.WithContext(ctx).Where("availability_lecturer_id = ?", lecturerID)
	if q.Day > 0 {
		tx = tx.Where("availability_day_of_week = ?", q.Day)
	}
	if q.Active != nil {
		tx = tx.Where("availability_is_active = ?", *q.Active)
	}
	var rows []model.AvailabilityModel
	err := tx.Order("availability_day_of_week ASC, availability_start_time ASC").Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AvailabilityModel, error) {
	var m model.AvailabilityModel
	if err := r.db.WithContext(ctx).Where("availability_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, notFoundMsg)
	}
	return &m, nil
}

func (r *gormRepository) ActiveOnDay(ctx context.Context, lecturerID uuid.UUID, day int, excludeID uuid.UUID) ([]model.AvailabilityModel, error) {
	tx := r.db.WithContext(ctx).
		Where("availability_lecturer_id = ? AND availability_day_of_week = ? AND availability_is_active = TRUE", lecturerID, day)
	if excludeID != uuid.Nil {
		tx = tx.Where("availability_id <> ?", excludeID)
	}
	var rows []model.AvailabilityModel
	err := tx.Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}

func (r *gormRepository) LecturerExists(ctx context.Context, lecturerID uuid.UUID, roles []string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("users").
		Where("id = ? AND role IN ? AND is_active = TRUE", lecturerID, roles).
		Count(&n).Error
	if err != nil {
		return false, apperr.FromDB(err, "")
	}
	return n > 0, nil
}

func (r *gormRepository) Create(ctx context.Context, m *model.AvailabilityModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(m).Error, "")
}

func (r *gormRepository) Save(ctx context.Context, m *model.AvailabilityModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Save(m).Error, "")
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("availability_id = ?", id).Delete(&model.AvailabilityModel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(notFoundMsg)
	}
	return nil
}
