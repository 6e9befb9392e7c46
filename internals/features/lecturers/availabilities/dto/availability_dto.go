package dto

import (
	"strings"
	"time"

	"skripsiku_backend/internals/features/lecturers/availabilities/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type CreateAvailabilityRequest struct {
	DayOfWeek  int     `json:"availability_day_of_week" validate:"required,min=1,max=7"`
	StartTime  string  `json:"availability_start_time" validate:"required,datetime=15:04"`
	EndTime    string  `json:"availability_end_time" validate:"required,datetime=15:04"`
	Location   string  `json:"availability_location" validate:"max=150"`
	Note       string  `json:"availability_note" validate:"max=500"`
	ValidFrom  *string `json:"availability_valid_from" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil *string `json:"availability_valid_until" validate:"omitempty,datetime=2006-01-02"`
	IsActive   *bool   `json:"availability_is_active"`
}

func (r *CreateAvailabilityRequest) ToModel() (*model.AvailabilityModel, error) {
	from, err := parseOptionalDate(r.ValidFrom)
	if err != nil {
		return nil, err
	}
	until, err := parseOptionalDate(r.ValidUntil)
	if err != nil {
		return nil, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &model.AvailabilityModel{
		AvailabilityDayOfWeek:  r.DayOfWeek,
		AvailabilityStartTime:  strings.TrimSpace(r.StartTime),
		AvailabilityEndTime:    strings.TrimSpace(r.EndTime),
		AvailabilityLocation:   r.Location,
		AvailabilityNote:       r.Note,
		AvailabilityValidFrom:  from,
		AvailabilityValidUntil: until,
		AvailabilityIsActive:   active,
	}, nil
}

// Tanggal berlaku: string kosong = hapus batas.
type UpdateAvailabilityRequest struct {
	DayOfWeek  *int    `json:"availability_day_of_week" validate:"omitempty,min=1,max=7"`
	StartTime  *string `json:"availability_start_time" validate:"omitempty,datetime=15:04"`
	EndTime    *string `json:"availability_end_time" validate:"omitempty,datetime=15:04"`
	Location   *string `json:"availability_location" validate:"omitempty,max=150"`
	Note       *string `json:"availability_note" validate:"omitempty,max=500"`
	ValidFrom  *string `json:"availability_valid_from"`
	ValidUntil *string `json:"availability_valid_until"`
}

func (r *UpdateAvailabilityRequest) Apply(m *model.AvailabilityModel) error {
	if r.DayOfWeek != nil {
		m.AvailabilityDayOfWeek = *r.DayOfWeek
	}
	if r.StartTime != nil {
		m.AvailabilityStartTime = strings.TrimSpace(*r.StartTime)
	}
	if r.EndTime != nil {
		m.AvailabilityEndTime = strings.TrimSpace(*r.EndTime)
	}
	if r.Location != nil {
		m.AvailabilityLocation = *r.Location
	}
	if r.Note != nil {
		m.AvailabilityNote = *r.Note
	}
	if r.ValidFrom != nil {
		t, err := parseOptionalDate(r.ValidFrom)
		if err != nil {
			return err
		}
		m.AvailabilityValidFrom = t
	}
	if r.ValidUntil != nil {
		t, err := parseOptionalDate(r.ValidUntil)
		if err != nil {
			return err
		}
		m.AvailabilityValidUntil = t
	}
	return nil
}

type ListAvailabilityQuery struct {
	Day    int   `query:"day" validate:"omitempty,min=1,max=7"`
	Active *bool `query:"active"`
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*s))
	if err != nil {
		return nil, apperr.Validation("Tanggal harus berformat YYYY-MM-DD")
	}
	return &t, nil
}
