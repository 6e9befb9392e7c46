package dto

import "strings"

// Field form multipart saat upload template (file di field "file").
type UploadTemplateRequest struct {
	Key  string `form:"key" validate:"omitempty,min=3,max=100"`
	Name string `form:"name" validate:"required,min=3,max=150"`
	Kind string `form:"kind" validate:"omitempty,oneof=letter report"`
}

func (r *UploadTemplateRequest) Normalize() {
	r.Key = strings.TrimSpace(r.Key)
	r.Name = strings.TrimSpace(r.Name)
	r.Kind = strings.ToLower(strings.TrimSpace(r.Kind))
	if r.Kind == "" {
		r.Kind = "letter"
	}
}

type ListTemplateQuery struct {
	Kind   string `query:"kind" validate:"omitempty,oneof=letter report"`
	Active *bool  `query:"active"`
}

type GenerateRequest struct {
	Data map[string]any `json:"data" validate:"required"`
}

type ListGenerationQuery struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}
