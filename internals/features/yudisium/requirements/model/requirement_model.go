package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	helper "skripsiku_backend/internals/helpers"
)

// Syarat yudisium; document_types = ekstensi/jenis berkas yang diterima.
type RequirementModel struct {
	RequirementID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:requirement_id" json:"requirement_id"`
	RequirementName          string         `gorm:"type:varchar(150);not null;uniqueIndex:uq_yudisium_requirement_name;column:requirement_name" json:"requirement_name"`
	RequirementDescription   string         `gorm:"type:text;column:requirement_description" json:"requirement_description,omitempty"`
	RequirementDocumentTypes pq.StringArray `gorm:"type:text[];not null;default:'{}';column:requirement_document_types" json:"requirement_document_types"`
	RequirementDisplayOrder  int            `gorm:"not null;default:0;index;column:requirement_display_order" json:"requirement_display_order"`
	RequirementIsActive      bool           `gorm:"not null;default:true;column:requirement_is_active" json:"requirement_is_active"`

	RequirementCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:requirement_created_at" json:"requirement_created_at"`
	RequirementUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:requirement_updated_at" json:"requirement_updated_at"`
}

func (RequirementModel) TableName() string { return "yudisium_requirements" }

func (m *RequirementModel) BeforeSave(tx *gorm.DB) error {
	m.RequirementName = helper.NormalizeName(m.RequirementName)
	m.RequirementDocumentTypes = NormalizeDocumentTypes(m.RequirementDocumentTypes)
	return nil
}

// NormalizeDocumentTypes: lowercase, tanpa titik depan, unik, urutan dipertahankan.
func NormalizeDocumentTypes(in []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	seen := map[string]bool{}
	for _, t := range in {
		t = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(t)), ".")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
