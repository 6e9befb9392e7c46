package dto

import (
	"strings"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/assessments/model"
)

// Pointer supaya nilai 0 tetap terbaca sebagai "dikirim".
type CreateRubricRequest struct {
	RubricLabel       string `json:"rubric_label" validate:"required,min=1,max=100"`
	RubricDescription string `json:"rubric_description"`
	RubricMinScore    *int   `json:"rubric_min_score" validate:"required"`
	RubricMaxScore    *int   `json:"rubric_max_score" validate:"required"`
}

func (r *CreateRubricRequest) ToModel(criteriaID uuid.UUID) *model.RubricModel {
	return &model.RubricModel{
		RubricCriteriaID:  criteriaID,
		RubricLabel:       r.RubricLabel,
		RubricDescription: strings.TrimSpace(r.RubricDescription),
		RubricMinScore:    *r.RubricMinScore,
		RubricMaxScore:    *r.RubricMaxScore,
	}
}

type UpdateRubricRequest struct {
	RubricLabel       *string `json:"rubric_label" validate:"omitempty,min=1,max=100"`
	RubricDescription *string `json:"rubric_description"`
	RubricMinScore    *int    `json:"rubric_min_score"`
	RubricMaxScore    *int    `json:"rubric_max_score"`
}

func (r *UpdateRubricRequest) Apply(m *model.RubricModel) {
	if r.RubricLabel != nil {
		m.RubricLabel = *r.RubricLabel
	}
	if r.RubricDescription != nil {
		m.RubricDescription = strings.TrimSpace(*r.RubricDescription)
	}
	if r.RubricMinScore != nil {
		m.RubricMinScore = *r.RubricMinScore
	}
	if r.RubricMaxScore != nil {
		m.RubricMaxScore = *r.RubricMaxScore
	}
}

type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}
