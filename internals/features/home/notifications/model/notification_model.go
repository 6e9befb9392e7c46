package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Jenis notifikasi
const (
	NotificationTypeThesisFailed = "thesis_failed"
	NotificationTypeGuidance     = "guidance"
	NotificationTypeAnnouncement = "announcement"
)

type NotificationModel struct {
	NotificationID     uuid.UUID      `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserID uuid.UUID      `gorm:"column:notification_user_id;type:uuid;not null;index:idx_notifications_user_created,priority:1" json:"notification_user_id"`
	NotificationTitle  string         `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationBody   string         `gorm:"column:notification_body;type:text" json:"notification_body"`
	NotificationType   string         `gorm:"column:notification_type;type:varchar(40);not null" json:"notification_type"`
	NotificationData   datatypes.JSON `gorm:"column:notification_data;type:jsonb" json:"notification_data,omitempty"`
	NotificationTags   pq.StringArray `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationReadAt *time.Time     `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime;index:idx_notifications_user_created,priority:2,sort:desc" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
