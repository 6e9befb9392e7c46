package dto

import (
	"strings"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/assessments/model"
	helper "skripsiku_backend/internals/helpers"
)

type CreateCriteriaRequest struct {
	CriteriaCpmkID    uuid.UUID `json:"criteria_cpmk_id" validate:"required"`
	CriteriaName      string    `json:"criteria_name" validate:"required,min=3,max=150"`
	CriteriaAppliesTo string    `json:"criteria_applies_to" validate:"required,oneof=seminar defence"`
	CriteriaRole      string    `json:"criteria_role" validate:"required,oneof=default examiner supervisor"`
	CriteriaMaxScore  int       `json:"criteria_max_score" validate:"required,min=1,max=100"`
	CriteriaIsActive  *bool     `json:"criteria_is_active"`
}

func (r *CreateCriteriaRequest) ToModel() *model.CriteriaModel {
	active := true
	if r.CriteriaIsActive != nil {
		active = *r.CriteriaIsActive
	}
	return &model.CriteriaModel{
		CriteriaCpmkID:    r.CriteriaCpmkID,
		CriteriaName:      helper.NormalizeName(r.CriteriaName),
		CriteriaAppliesTo: strings.ToLower(r.CriteriaAppliesTo),
		CriteriaRole:      strings.ToLower(r.CriteriaRole),
		CriteriaMaxScore:  r.CriteriaMaxScore,
		CriteriaIsActive:  active,
	}
}

// Update parsial. is_active diubah lewat toggle.
type UpdateCriteriaRequest struct {
	CriteriaCpmkID    *uuid.UUID `json:"criteria_cpmk_id"`
	CriteriaName      *string    `json:"criteria_name" validate:"omitempty,min=3,max=150"`
	CriteriaAppliesTo *string    `json:"criteria_applies_to" validate:"omitempty,oneof=seminar defence"`
	CriteriaRole      *string    `json:"criteria_role" validate:"omitempty,oneof=default examiner supervisor"`
	CriteriaMaxScore  *int       `json:"criteria_max_score" validate:"omitempty,min=1,max=100"`
}

func (r *UpdateCriteriaRequest) Apply(m *model.CriteriaModel) {
	if r.CriteriaCpmkID != nil {
		m.CriteriaCpmkID = *r.CriteriaCpmkID
	}
	if r.CriteriaName != nil {
		m.CriteriaName = helper.NormalizeName(*r.CriteriaName)
	}
	if r.CriteriaAppliesTo != nil {
		m.CriteriaAppliesTo = strings.ToLower(*r.CriteriaAppliesTo)
	}
	if r.CriteriaRole != nil {
		m.CriteriaRole = strings.ToLower(*r.CriteriaRole)
	}
	if r.CriteriaMaxScore != nil {
		m.CriteriaMaxScore = *r.CriteriaMaxScore
	}
}

type ListCriteriaQuery struct {
	AppliesTo string `query:"applies_to" validate:"omitempty,oneof=seminar defence"`
	Role      string `query:"role" validate:"omitempty,oneof=default examiner supervisor"`
	CpmkID    string `query:"cpmk_id" validate:"omitempty,uuid"`
	Active    *bool  `query:"active"`
}

type BudgetQuery struct {
	AppliesTo string `query:"applies_to" validate:"required,oneof=seminar defence"`
	Role      string `query:"role" validate:"required,oneof=default examiner supervisor"`
}

type BudgetResponse struct {
	AppliesTo string   `json:"applies_to"`
	Roles     []string `json:"roles"`
	Used      int      `json:"used"`
	Remaining int      `json:"remaining"`
	Max       int      `json:"max"`
}

type ReorderCriteriaRequest struct {
	AppliesTo string      `json:"applies_to" validate:"required,oneof=seminar defence"`
	Role      string      `json:"role" validate:"required,oneof=default examiner supervisor"`
	IDs       []uuid.UUID `json:"ids" validate:"required,min=1"`
}
