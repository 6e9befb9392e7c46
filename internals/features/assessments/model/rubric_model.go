package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "skripsiku_backend/internals/helpers"
)

// Rubrik = satu level capaian [min, max] di bawah kriteria.
type RubricModel struct {
	RubricID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:rubric_id" json:"rubric_id"`
	RubricCriteriaID  uuid.UUID `gorm:"type:uuid;not null;index;column:rubric_criteria_id" json:"rubric_criteria_id"`
	RubricLabel       string    `gorm:"type:varchar(100);not null;column:rubric_label" json:"rubric_label"`
	RubricDescription string    `gorm:"type:text;column:rubric_description" json:"rubric_description"`

	RubricMinScore int `gorm:"not null;column:rubric_min_score;check:chk_rubric_min_score,rubric_min_score >= 0" json:"rubric_min_score"`
	RubricMaxScore int `gorm:"not null;column:rubric_max_score;check:chk_rubric_range,rubric_max_score >= rubric_min_score" json:"rubric_max_score"`

	RubricDisplayOrder int `gorm:"not null;default:0;column:rubric_display_order" json:"rubric_display_order"`

	RubricCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:rubric_created_at" json:"rubric_created_at"`
	RubricUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:rubric_updated_at" json:"rubric_updated_at"`
}

func (RubricModel) TableName() string { return "assessment_rubrics" }

func (m *RubricModel) BeforeSave(tx *gorm.DB) error {
	m.RubricLabel = helper.NormalizeName(m.RubricLabel)
	return nil
}

// Contains: skor masuk rentang tertutup [min, max].
func (m *RubricModel) Contains(score int) bool {
	return score >= m.RubricMinScore && score <= m.RubricMaxScore
}
