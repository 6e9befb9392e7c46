package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	GuidanceRequested = "requested"
	GuidanceAccepted  = "accepted"
	GuidanceRejected  = "rejected"
	GuidanceCompleted = "completed"
	GuidanceCancelled = "cancelled"
)

// OpenGuidanceStatuses dibatalkan otomatis saat skripsi jatuh ke FAILED.
var OpenGuidanceStatuses = []string{GuidanceRequested, GuidanceAccepted}

// guidanceTransitions: status asal → status tujuan yang sah.
var guidanceTransitions = map[string][]string{
	GuidanceRequested: {GuidanceAccepted, GuidanceRejected, GuidanceCancelled},
	GuidanceAccepted:  {GuidanceCompleted, GuidanceCancelled},
}

func CanTransitionGuidance(from, to string) bool {
	for _, s := range guidanceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Sesi bimbingan antara mahasiswa dan salah satu pembimbing.
type GuidanceModel struct {
	GuidanceID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:guidance_id" json:"guidance_id"`
	GuidanceThesisID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_guidance_thesis_status,priority:1;column:guidance_thesis_id" json:"guidance_thesis_id"`
	GuidanceSupervisorID uuid.UUID  `gorm:"type:uuid;not null;index;column:guidance_supervisor_id" json:"guidance_supervisor_id"`
	GuidanceStatus       string     `gorm:"type:varchar(12);not null;default:'requested';index:idx_guidance_thesis_status,priority:2;column:guidance_status;check:chk_guidance_status,guidance_status IN ('requested','accepted','rejected','completed','cancelled')" json:"guidance_status"`
	GuidanceTopic        string     `gorm:"type:varchar(200);not null;column:guidance_topic" json:"guidance_topic"`
	GuidanceStudentNote  string     `gorm:"type:text;column:guidance_student_note" json:"guidance_student_note,omitempty"`
	GuidanceLecturerNote string     `gorm:"type:text;column:guidance_lecturer_note" json:"guidance_lecturer_note,omitempty"`
	GuidanceRequestedAt  time.Time  `gorm:"type:timestamptz;not null;column:guidance_requested_at" json:"guidance_requested_at"`
	GuidanceScheduledAt  *time.Time `gorm:"type:timestamptz;column:guidance_scheduled_at" json:"guidance_scheduled_at,omitempty"`
	GuidanceCompletedAt  *time.Time `gorm:"type:timestamptz;column:guidance_completed_at" json:"guidance_completed_at,omitempty"`

	GuidanceCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:guidance_created_at" json:"guidance_created_at"`
	GuidanceUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:guidance_updated_at" json:"guidance_updated_at"`
}

func (GuidanceModel) TableName() string { return "thesis_guidances" }
