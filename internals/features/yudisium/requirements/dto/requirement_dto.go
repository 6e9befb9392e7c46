package dto

import (
	"strings"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/yudisium/requirements/model"
	helper "skripsiku_backend/internals/helpers"
)

type CreateRequirementRequest struct {
	RequirementName          string   `json:"requirement_name" validate:"required,min=3,max=150"`
	RequirementDescription   string   `json:"requirement_description"`
	RequirementDocumentTypes []string `json:"requirement_document_types" validate:"omitempty,max=10,dive,min=2,max=10,alphanum"`
	RequirementIsActive      *bool    `json:"requirement_is_active"`
}

func (r *CreateRequirementRequest) ToModel() *model.RequirementModel {
	active := true
	if r.RequirementIsActive != nil {
		active = *r.RequirementIsActive
	}
	return &model.RequirementModel{
		RequirementName:          helper.NormalizeName(r.RequirementName),
		RequirementDescription:   strings.TrimSpace(r.RequirementDescription),
		RequirementDocumentTypes: model.NormalizeDocumentTypes(r.RequirementDocumentTypes),
		RequirementIsActive:      active,
	}
}

type UpdateRequirementRequest struct {
	RequirementName          *string   `json:"requirement_name" validate:"omitempty,min=3,max=150"`
	RequirementDescription   *string   `json:"requirement_description"`
	RequirementDocumentTypes *[]string `json:"requirement_document_types" validate:"omitempty,max=10,dive,min=2,max=10,alphanum"`
}

func (r *UpdateRequirementRequest) Apply(m *model.RequirementModel) {
	if r.RequirementName != nil {
		m.RequirementName = helper.NormalizeName(*r.RequirementName)
	}
	if r.RequirementDescription != nil {
		m.RequirementDescription = strings.TrimSpace(*r.RequirementDescription)
	}
	if r.RequirementDocumentTypes != nil {
		m.RequirementDocumentTypes = model.NormalizeDocumentTypes(*r.RequirementDocumentTypes)
	}
}

type ListRequirementQuery struct {
	Active *bool `query:"active"`
}

type ReorderRequirementRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}
