// file: internals/features/assessments/model/criteria_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "skripsiku_backend/internals/helpers"
)

const (
	AppliesToSeminar = "seminar"
	AppliesToDefence = "defence"

	RoleDefault    = "default"
	RoleExaminer   = "examiner"
	RoleSupervisor = "supervisor"
)

// Kriteria penilaian (satu dimensi skor) di bawah satu CPMK.
type CriteriaModel struct {
	CriteriaID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:criteria_id" json:"criteria_id"`
	CriteriaCpmkID uuid.UUID `gorm:"type:uuid;not null;index;column:criteria_cpmk_id" json:"criteria_cpmk_id"`
	CriteriaName   string    `gorm:"type:varchar(150);not null;column:criteria_name" json:"criteria_name"`

	CriteriaAppliesTo string `gorm:"type:varchar(10);not null;index:idx_criteria_scope,priority:1;column:criteria_applies_to;check:chk_criteria_applies_to,criteria_applies_to IN ('seminar','defence')" json:"criteria_applies_to"`
	CriteriaRole      string `gorm:"type:varchar(12);not null;index:idx_criteria_scope,priority:2;column:criteria_role;check:chk_criteria_role,criteria_role IN ('default','examiner','supervisor')" json:"criteria_role"`

	CriteriaMaxScore     int  `gorm:"not null;column:criteria_max_score;check:chk_criteria_max_score,criteria_max_score > 0" json:"criteria_max_score"`
	CriteriaDisplayOrder int  `gorm:"not null;default:0;column:criteria_display_order" json:"criteria_display_order"`
	CriteriaIsActive     bool `gorm:"not null;default:true;column:criteria_is_active" json:"criteria_is_active"`

	CriteriaCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:criteria_created_at" json:"criteria_created_at"`
	CriteriaUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:criteria_updated_at" json:"criteria_updated_at"`

	Rubrics []RubricModel `gorm:"foreignKey:RubricCriteriaID;references:CriteriaID;constraint:OnDelete:CASCADE" json:"rubrics,omitempty"`
}

func (CriteriaModel) TableName() string { return "assessment_criteria" }

func (m *CriteriaModel) BeforeSave(tx *gorm.DB) error {
	m.CriteriaName = helper.NormalizeName(m.CriteriaName)
	m.CriteriaAppliesTo = strings.ToLower(strings.TrimSpace(m.CriteriaAppliesTo))
	m.CriteriaRole = strings.ToLower(strings.TrimSpace(m.CriteriaRole))
	return nil
}

// Scope mengembalikan anggaran skor tempat kriteria ini dihitung.
func (m *CriteriaModel) Scope() Scope {
	return ScopeOf(m.CriteriaAppliesTo, m.CriteriaRole)
}

// MaxRubricScore: batas atas tertinggi dari rubrik yang sudah dimuat.
func (m *CriteriaModel) MaxRubricScore() int {
	hi := 0
	for _, r := range m.Rubrics {
		if r.RubricMaxScore > hi {
			hi = r.RubricMaxScore
		}
	}
	return hi
}
