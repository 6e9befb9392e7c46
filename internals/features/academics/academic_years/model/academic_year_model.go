// file: internals/features/academics/academic_years/model/academic_year_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SemesterGanjil = "ganjil"
	SemesterGenap  = "genap"
)

type AcademicYearModel struct {
	AcademicYearID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_year_id" json:"academic_year_id"`
	AcademicYearYear     string    `gorm:"type:varchar(9);not null;uniqueIndex:uq_academic_year_period,priority:1;column:academic_year_year" json:"academic_year_year"`
	AcademicYearSemester string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_academic_year_period,priority:2;column:academic_year_semester;check:chk_academic_year_semester,academic_year_semester IN ('ganjil','genap')" json:"academic_year_semester"`

	AcademicYearStartDate time.Time `gorm:"type:date;not null;column:academic_year_start_date" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"type:date;not null;column:academic_year_end_date" json:"academic_year_end_date"`

	// maksimal satu baris aktif
	AcademicYearIsActive bool `gorm:"not null;default:false;column:academic_year_is_active;uniqueIndex:uq_academic_year_single_active,where:academic_year_is_active = true" json:"academic_year_is_active"`

	AcademicYearCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:academic_year_created_at" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:academic_year_updated_at" json:"academic_year_updated_at"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

func (m *AcademicYearModel) BeforeSave(tx *gorm.DB) error {
	m.AcademicYearYear = strings.TrimSpace(m.AcademicYearYear)
	m.AcademicYearSemester = strings.ToLower(strings.TrimSpace(m.AcademicYearSemester))
	return nil
}

// Label contoh: "2024/2025 Ganjil"
func (m *AcademicYearModel) Label() string {
	sem := m.AcademicYearSemester
	if sem != "" {
		sem = strings.ToUpper(sem[:1]) + sem[1:]
	}
	return m.AcademicYearYear + " " + sem
}
