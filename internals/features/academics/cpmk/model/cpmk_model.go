// file: internals/features/academics/cpmk/model/cpmk_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "skripsiku_backend/internals/helpers"
)

// Jenis CPMK
const (
	CpmkTypeResearchMethod = "research_method"
	CpmkTypeThesis         = "thesis"
)

// CPMK = Capaian Pembelajaran Mata Kuliah
type CpmkModel struct {
	CpmkID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:cpmk_id" json:"cpmk_id"`
	CpmkCode        string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_cpmk_code;column:cpmk_code" json:"cpmk_code"`
	CpmkDescription string     `gorm:"type:text;not null;column:cpmk_description" json:"cpmk_description"`
	CpmkType        string     `gorm:"type:varchar(20);not null;column:cpmk_type;check:chk_cpmk_type,cpmk_type IN ('research_method','thesis')" json:"cpmk_type"`
	CpmkIsActive    bool       `gorm:"not null;default:true;column:cpmk_is_active" json:"cpmk_is_active"`
	CpmkCplID       *uuid.UUID `gorm:"type:uuid;index;column:cpmk_cpl_id" json:"cpmk_cpl_id,omitempty"`

	CpmkCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:cpmk_created_at" json:"cpmk_created_at"`
	CpmkUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:cpmk_updated_at" json:"cpmk_updated_at"`
}

func (CpmkModel) TableName() string { return "cpmk" }

func (m *CpmkModel) BeforeSave(tx *gorm.DB) error {
	m.CpmkCode = helper.NormalizeCode(m.CpmkCode)
	m.CpmkDescription = strings.TrimSpace(m.CpmkDescription)
	m.CpmkType = strings.ToLower(strings.TrimSpace(m.CpmkType))
	return nil
}
