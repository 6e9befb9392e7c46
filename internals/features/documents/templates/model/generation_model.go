package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Log setiap dokumen PDF yang dihasilkan.
type GenerationModel struct {
	GenerationID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:generation_id" json:"generation_id"`
	GenerationTemplateID  uuid.UUID      `gorm:"type:uuid;not null;index;column:generation_template_id" json:"generation_template_id"`
	GenerationRequestedBy uuid.UUID      `gorm:"type:uuid;not null;index;column:generation_requested_by" json:"generation_requested_by"`
	GenerationData        datatypes.JSON `gorm:"type:jsonb;column:generation_data" json:"generation_data"`
	GenerationOutputKey   string         `gorm:"type:text;not null;column:generation_output_key" json:"-"`
	GenerationOutputURL   string         `gorm:"type:text;not null;column:generation_output_url" json:"generation_output_url"`
	GenerationCreatedAt   time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:generation_created_at" json:"generation_created_at"`
}

func (GenerationModel) TableName() string { return "document_generations" }
