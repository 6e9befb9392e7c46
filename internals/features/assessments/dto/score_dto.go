package dto

import (
	"strings"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/assessments/model"
)

type SubmitScoreRequest struct {
	ThesisID   uuid.UUID  `json:"thesis_id" validate:"required"`
	CriteriaID uuid.UUID  `json:"criteria_id" validate:"required"`
	RubricID   *uuid.UUID `json:"rubric_id"`
	Score      *int       `json:"score" validate:"required"`
	Note       string     `json:"note" validate:"max=1000"`
}

func (r *SubmitScoreRequest) ToModel(assessorID uuid.UUID) *model.ScoreModel {
	return &model.ScoreModel{
		ScoreThesisID:   r.ThesisID,
		ScoreCriteriaID: r.CriteriaID,
		ScoreAssessorID: assessorID,
		ScoreRubricID:   r.RubricID,
		ScoreValue:      *r.Score,
		ScoreNote:       strings.TrimSpace(r.Note),
	}
}

type ListScoreQuery struct {
	ThesisID  string `query:"thesis_id" validate:"required,uuid"`
	AppliesTo string `query:"applies_to" validate:"omitempty,oneof=seminar defence"`
}

// Total skor per penilai per jenis ujian.
type AssessorTotal struct {
	AssessorID uuid.UUID `json:"assessor_id"`
	AppliesTo  string    `json:"applies_to"`
	Total      int       `json:"total"`
}

type ThesisScoresResponse struct {
	Scores []model.ScoreModel `json:"scores"`
	Totals []AssessorTotal    `json:"totals"`
}
