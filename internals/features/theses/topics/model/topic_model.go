package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "skripsiku_backend/internals/helpers"
)

// Topik / bidang minat skripsi.
type TopicModel struct {
	TopicID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:topic_id" json:"topic_id"`
	TopicName        string    `gorm:"type:varchar(150);not null;column:topic_name" json:"topic_name"`
	TopicDescription string    `gorm:"type:text;column:topic_description" json:"topic_description,omitempty"`
	TopicIsActive    bool      `gorm:"not null;default:true;column:topic_is_active" json:"topic_is_active"`

	TopicCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:topic_created_at" json:"topic_created_at"`
	TopicUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:topic_updated_at" json:"topic_updated_at"`
}

func (TopicModel) TableName() string { return "thesis_topics" }

func (m *TopicModel) BeforeSave(tx *gorm.DB) error {
	m.TopicName = helper.NormalizeName(m.TopicName)
	return nil
}
