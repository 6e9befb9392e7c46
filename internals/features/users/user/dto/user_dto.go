package dto

import (
	"github.com/google/uuid"
)

// Query list user (admin)
type ListUserQuery struct {
	Q       string `query:"q"`
	Role    string `query:"role" validate:"omitempty,oneof=admin sekdep kadep dosen mahasiswa"`
	Active  *bool  `query:"active"`
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
}

type ImportRowError struct {
	Line    int    `json:"line"`
	NIM     string `json:"nim,omitempty"`
	Message string `json:"message"`
}

type ImportResult struct {
	Created    int              `json:"created"`
	Skipped    int              `json:"skipped"`
	CreatedIDs []uuid.UUID      `json:"created_ids"`
	Errors     []ImportRowError `json:"errors"`
}

// StudentRow: satu baris CSV nim,name,email
type StudentRow struct {
	Line  int
	NIM   string `validate:"required,alphanum,min=5,max=20"`
	Name  string `validate:"required,max=120"`
	Email string `validate:"required,email,max=255"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
