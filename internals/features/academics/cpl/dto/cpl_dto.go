package dto

import (
	"strings"

	"skripsiku_backend/internals/features/academics/cpl/model"
	helper "skripsiku_backend/internals/helpers"
)

type CreateCplRequest struct {
	CplCode        string `json:"cpl_code" validate:"required,min=2,max=30"`
	CplDescription string `json:"cpl_description" validate:"required,min=3"`
	CplIsActive    *bool  `json:"cpl_is_active"`
}

func (r *CreateCplRequest) Normalize() {
	r.CplCode = helper.NormalizeCode(r.CplCode)
	r.CplDescription = strings.TrimSpace(r.CplDescription)
}

func (r *CreateCplRequest) ToModel() *model.CplModel {
	active := true
	if r.CplIsActive != nil {
		active = *r.CplIsActive
	}
	return &model.CplModel{
		CplCode:        r.CplCode,
		CplDescription: r.CplDescription,
		CplIsActive:    active,
	}
}

type UpdateCplRequest struct {
	CplCode        *string `json:"cpl_code" validate:"omitempty,min=2,max=30"`
	CplDescription *string `json:"cpl_description" validate:"omitempty,min=3"`
	CplIsActive    *bool   `json:"cpl_is_active"`
}

func (r *UpdateCplRequest) Apply(m *model.CplModel) {
	if r.CplCode != nil {
		m.CplCode = helper.NormalizeCode(*r.CplCode)
	}
	if r.CplDescription != nil {
		m.CplDescription = strings.TrimSpace(*r.CplDescription)
	}
	if r.CplIsActive != nil {
		m.CplIsActive = *r.CplIsActive
	}
}

type ListCplQuery struct {
	Q       string `query:"q"`
	Active  *bool  `query:"active"`
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
}
