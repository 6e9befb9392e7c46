// file: internals/features/lecturers/availabilities/model/availability_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slot jadwal bimbingan dosen. Jam disimpan "HH:MM" (zero-padded) sehingga urut leksikal = urut waktu.
type AvailabilityModel struct {
	AvailabilityID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:availability_id" json:"availability_id"`
	AvailabilityLecturerID uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_lecturer_day,priority:1;column:availability_lecturer_id" json:"availability_lecturer_id"`
	AvailabilityDayOfWeek  int       `gorm:"not null;index:idx_availability_lecturer_day,priority:2;column:availability_day_of_week;check:chk_availability_day,availability_day_of_week BETWEEN 1 AND 7" json:"availability_day_of_week"`

	AvailabilityStartTime string `gorm:"type:varchar(5);not null;column:availability_start_time" json:"availability_start_time"`
	AvailabilityEndTime   string `gorm:"type:varchar(5);not null;column:availability_end_time" json:"availability_end_time"`

	AvailabilityLocation string `gorm:"type:varchar(150);column:availability_location" json:"availability_location,omitempty"`
	AvailabilityNote     string `gorm:"type:text;column:availability_note" json:"availability_note,omitempty"`

	AvailabilityValidFrom  *time.Time `gorm:"type:date;column:availability_valid_from" json:"availability_valid_from,omitempty"`
	AvailabilityValidUntil *time.Time `gorm:"type:date;column:availability_valid_until" json:"availability_valid_until,omitempty"`

	AvailabilityIsActive bool `gorm:"not null;default:true;column:availability_is_active" json:"availability_is_active"`

	AvailabilityCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:availability_created_at" json:"availability_created_at"`
	AvailabilityUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:availability_updated_at" json:"availability_updated_at"`
}

func (AvailabilityModel) TableName() string { return "lecturer_availabilities" }

func (m *AvailabilityModel) BeforeSave(tx *gorm.DB) error {
	m.AvailabilityStartTime = strings.TrimSpace(m.AvailabilityStartTime)
	m.AvailabilityEndTime = strings.TrimSpace(m.AvailabilityEndTime)
	m.AvailabilityLocation = strings.TrimSpace(m.AvailabilityLocation)
	m.AvailabilityNote = strings.TrimSpace(m.AvailabilityNote)
	return nil
}

var dayNames = [...]string{"", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Minggu"}

func DayName(d int) string {
	if d < 1 || d > 7 {
		return ""
	}
	return dayNames[d]
}
