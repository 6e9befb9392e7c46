package dto

import (
	"strings"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/academics/cpmk/model"
	helper "skripsiku_backend/internals/helpers"
)

type CreateCpmkRequest struct {
	CpmkCode        string     `json:"cpmk_code" validate:"required,min=2,max=30"`
	CpmkDescription string     `json:"cpmk_description" validate:"required,min=3"`
	CpmkType        string     `json:"cpmk_type" validate:"required,oneof=research_method thesis"`
	CpmkIsActive    *bool      `json:"cpmk_is_active"`
	CpmkCplID       *uuid.UUID `json:"cpmk_cpl_id"`
}

func (r *CreateCpmkRequest) Normalize() {
	r.CpmkCode = helper.NormalizeCode(r.CpmkCode)
	r.CpmkDescription = strings.TrimSpace(r.CpmkDescription)
}

func (r *CreateCpmkRequest) ToModel() *model.CpmkModel {
	active := true
	if r.CpmkIsActive != nil {
		active = *r.CpmkIsActive
	}
	return &model.CpmkModel{
		CpmkCode:        r.CpmkCode,
		CpmkDescription: r.CpmkDescription,
		CpmkType:        r.CpmkType,
		CpmkIsActive:    active,
		CpmkCplID:       r.CpmkCplID,
	}
}

type UpdateCpmkRequest struct {
	CpmkCode        *string    `json:"cpmk_code" validate:"omitempty,min=2,max=30"`
	CpmkDescription *string    `json:"cpmk_description" validate:"omitempty,min=3"`
	CpmkType        *string    `json:"cpmk_type" validate:"omitempty,oneof=research_method thesis"`
	CpmkIsActive    *bool      `json:"cpmk_is_active"`
	CpmkCplID       *uuid.UUID `json:"cpmk_cpl_id"`
	ClearCpl        bool       `json:"clear_cpl"`
}

func (r *UpdateCpmkRequest) Apply(m *model.CpmkModel) {
	if r.CpmkCode != nil {
		m.CpmkCode = helper.NormalizeCode(*r.CpmkCode)
	}
	if r.CpmkDescription != nil {
		m.CpmkDescription = strings.TrimSpace(*r.CpmkDescription)
	}
	if r.CpmkType != nil {
		m.CpmkType = *r.CpmkType
	}
	if r.CpmkIsActive != nil {
		m.CpmkIsActive = *r.CpmkIsActive
	}
	if r.CpmkCplID != nil {
		m.CpmkCplID = r.CpmkCplID
	}
	if r.ClearCpl {
		m.CpmkCplID = nil
	}
}

type ListCpmkQuery struct {
	Q       string     `query:"q"`
	Type    string     `query:"type" validate:"omitempty,oneof=research_method thesis"`
	Active  *bool      `query:"active"`
	CplID   string `query:"cpl_id" validate:"omitempty,uuid"`
	Page    int        `query:"page"`
	PerPage int        `query:"per_page"`
}
