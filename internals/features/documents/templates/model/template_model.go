package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	KindLetter = "letter"
	KindReport = "report"
)

// Template DOCX dengan placeholder {{key}}.
type TemplateModel struct {
	TemplateID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:template_id" json:"template_id"`
	TemplateKey          string         `gorm:"type:varchar(100);not null;uniqueIndex:uq_document_template_key;column:template_key" json:"template_key"`
	TemplateName         string         `gorm:"type:varchar(150);not null;column:template_name" json:"template_name"`
	TemplateKind         string         `gorm:"type:varchar(10);not null;default:'letter';column:template_kind;check:chk_template_kind,template_kind IN ('letter','report')" json:"template_kind"`
	TemplateStorageKey   string         `gorm:"type:text;not null;column:template_storage_key" json:"-"`
	TemplateFileURL      string         `gorm:"type:text;not null;column:template_file_url" json:"template_file_url"`
	TemplatePlaceholders pq.StringArray `gorm:"type:text[];not null;default:'{}';column:template_placeholders" json:"template_placeholders"`
	TemplateIsActive     bool           `gorm:"not null;default:true;column:template_is_active" json:"template_is_active"`

	TemplateCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:template_created_at" json:"template_created_at"`
	TemplateUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:template_updated_at" json:"template_updated_at"`
}

func (TemplateModel) TableName() string { return "document_templates" }

func (m *TemplateModel) BeforeSave(tx *gorm.DB) error {
	m.TemplateName = strings.TrimSpace(m.TemplateName)
	m.TemplateKind = strings.ToLower(strings.TrimSpace(m.TemplateKind))
	return nil
}
