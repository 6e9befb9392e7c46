// file: internals/features/academics/cpl/model/cpl_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "skripsiku_backend/internals/helpers"
)

// CPL = Capaian Pembelajaran Lulusan
type CplModel struct {
	CplID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:cpl_id" json:"cpl_id"`
	CplCode        string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_cpl_code;column:cpl_code" json:"cpl_code"`
	CplDescription string    `gorm:"type:text;not null;column:cpl_description" json:"cpl_description"`
	CplIsActive    bool      `gorm:"not null;default:true;column:cpl_is_active" json:"cpl_is_active"`

	CplCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:cpl_created_at" json:"cpl_created_at"`
	CplUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:cpl_updated_at" json:"cpl_updated_at"`
}

func (CplModel) TableName() string { return "cpl" }

// kode disimpan uppercase supaya unik case-insensitive
func (m *CplModel) BeforeSave(tx *gorm.DB) error {
	m.CplCode = helper.NormalizeCode(m.CplCode)
	m.CplDescription = strings.TrimSpace(m.CplDescription)
	return nil
}
