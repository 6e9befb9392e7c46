package model

import (
	"time"

	"github.com/google/uuid"
)

// Nilai yang diberikan satu dosen untuk satu kriteria pada satu skripsi.
type ScoreModel struct {
	ScoreID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:score_id" json:"score_id"`
	ScoreThesisID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_score_per_assessor,priority:1;column:score_thesis_id" json:"score_thesis_id"`
	ScoreCriteriaID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_score_per_assessor,priority:2;index;column:score_criteria_id" json:"score_criteria_id"`
	ScoreAssessorID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_score_per_assessor,priority:3;column:score_assessor_id" json:"score_assessor_id"`
	ScoreRubricID   *uuid.UUID `gorm:"type:uuid;index;column:score_rubric_id" json:"score_rubric_id,omitempty"`

	ScoreValue int    `gorm:"not null;column:score_value;check:chk_score_value,score_value >= 0" json:"score_value"`
	ScoreNote  string `gorm:"type:text;column:score_note" json:"score_note,omitempty"`

	ScoreCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:score_created_at" json:"score_created_at"`
	ScoreUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:score_updated_at" json:"score_updated_at"`

	Criteria *CriteriaModel `gorm:"foreignKey:ScoreCriteriaID;references:CriteriaID;constraint:OnDelete:RESTRICT" json:"criteria,omitempty"`
	Rubric   *RubricModel   `gorm:"foreignKey:ScoreRubricID;references:RubricID;constraint:OnDelete:RESTRICT" json:"rubric,omitempty"`
}

func (ScoreModel) TableName() string { return "assessment_scores" }
