package dto

import (
	"strings"
	"time"

	"skripsiku_backend/internals/features/academics/academic_years/model"
	"skripsiku_backend/internals/helpers/apperr"
)

const DateLayout = "2006-01-02"

type CreateAcademicYearRequest struct {
	AcademicYearYear      string `json:"academic_year_year" validate:"required,len=9"`
	AcademicYearSemester  string `json:"academic_year_semester" validate:"required,oneof=ganjil genap"`
	AcademicYearStartDate string `json:"academic_year_start_date" validate:"required,datetime=2006-01-02"`
	AcademicYearEndDate   string `json:"academic_year_end_date" validate:"required,datetime=2006-01-02"`
	AcademicYearIsActive  bool   `json:"academic_year_is_active"`
}

func (r *CreateAcademicYearRequest) Normalize() {
	r.AcademicYearYear = strings.TrimSpace(r.AcademicYearYear)
	r.AcademicYearSemester = strings.ToLower(strings.TrimSpace(r.AcademicYearSemester))
}

func (r *CreateAcademicYearRequest) ToModel() (*model.AcademicYearModel, error) {
	start, err := parseDate("academic_year_start_date", r.AcademicYearStartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("academic_year_end_date", r.AcademicYearEndDate)
	if err != nil {
		return nil, err
	}
	return &model.AcademicYearModel{
		AcademicYearYear:      r.AcademicYearYear,
		AcademicYearSemester:  r.AcademicYearSemester,
		AcademicYearStartDate: start,
		AcademicYearEndDate:   end,
		AcademicYearIsActive:  r.AcademicYearIsActive,
	}, nil
}

// Update parsial; status aktif hanya lewat endpoint activate.
type UpdateAcademicYearRequest struct {
	AcademicYearYear      *string `json:"academic_year_year" validate:"omitempty,len=9"`
	AcademicYearSemester  *string `json:"academic_year_semester" validate:"omitempty,oneof=ganjil genap"`
	AcademicYearStartDate *string `json:"academic_year_start_date" validate:"omitempty,datetime=2006-01-02"`
	AcademicYearEndDate   *string `json:"academic_year_end_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateAcademicYearRequest) Apply(m *model.AcademicYearModel) error {
	if r.AcademicYearYear != nil {
		m.AcademicYearYear = strings.TrimSpace(*r.AcademicYearYear)
	}
	if r.AcademicYearSemester != nil {
		m.AcademicYearSemester = strings.ToLower(strings.TrimSpace(*r.AcademicYearSemester))
	}
	if r.AcademicYearStartDate != nil {
		t, err := parseDate("academic_year_start_date", *r.AcademicYearStartDate)
		if err != nil {
			return err
		}
		m.AcademicYearStartDate = t
	}
	if r.AcademicYearEndDate != nil {
		t, err := parseDate("academic_year_end_date", *r.AcademicYearEndDate)
		if err != nil {
			return err
		}
		m.AcademicYearEndDate = t
	}
	return nil
}

// PeriodChanged: apakah pasangan (tahun, semester) ikut diubah.
func (r *UpdateAcademicYearRequest) PeriodChanged() bool {
	return r.AcademicYearYear != nil || r.AcademicYearSemester != nil
}

type ListAcademicYearQuery struct {
	Year     string `query:"year"`
	Semester string `query:"semester" validate:"omitempty,oneof=ganjil genap"`
	Active   *bool  `query:"active"`
	Page     int    `query:"page"`
	PerPage  int    `query:"per_page"`
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperr.Validationf("%s harus berformat YYYY-MM-DD", field)
	}
	return t, nil
}
