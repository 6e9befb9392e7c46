package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/home/notifications/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type Repository interface {
	Create(ctx context.Context, n *model.NotificationModel) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.NotificationModel, int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, n *model.NotificationModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(n).Error, "")
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.NotificationModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.NotificationModel{}).Where("notification_user_id = ?", userID)
	if unreadOnly {
		tx = tx.Where("notification_read_at IS NULL")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "")
	}
	var rows []model.NotificationModel
	err := tx.Order("notification_created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, apperr.FromDB(err, "")
}

// MarkRead hanya milik user sendiri; yang sudah dibaca tidak diubah lagi.
func (r *gormRepository) MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) error {
	var n model.NotificationModel
	if err := r.db.WithContext(ctx).
		Where("notification_id = ? AND notification_user_id = ?", id, userID).
		Take(&n).Error; err != nil {
		return apperr.FromDB(err, "Notifikasi tidak ditemukan")
	}
	if n.NotificationReadAt != nil {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_id = ?", id).
		Update("notification_read_at", at).Error
	return apperr.FromDB(err, "")
}
