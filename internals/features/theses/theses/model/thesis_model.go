// file: internals/features/theses/theses/model/thesis_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating kesehatan progres, hanya diubah oleh job.
const (
	RatingOngoing   = "ONGOING"
	RatingSlow      = "SLOW"
	RatingAtRisk    = "AT_RISK"
	RatingFailed    = "FAILED"
	RatingCancelled = "CANCELLED"
)

type ThesisModel struct {
	ThesisID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:thesis_id" json:"thesis_id"`
	ThesisTitle          string     `gorm:"type:varchar(255);not null;column:thesis_title" json:"thesis_title"`
	ThesisStudentID      uuid.UUID  `gorm:"type:uuid;not null;index;column:thesis_student_id" json:"thesis_student_id"`
	ThesisTopicID        *uuid.UUID `gorm:"type:uuid;index;column:thesis_topic_id" json:"thesis_topic_id,omitempty"`
	ThesisAcademicYearID *uuid.UUID `gorm:"type:uuid;index;column:thesis_academic_year_id" json:"thesis_academic_year_id,omitempty"`
	ThesisStatusID       *uuid.UUID `gorm:"type:uuid;index;column:thesis_status_id" json:"thesis_status_id,omitempty"`

	ThesisRating string `gorm:"type:varchar(12);not null;default:'ONGOING';index;column:thesis_rating;check:chk_thesis_rating,thesis_rating IN ('ONGOING','SLOW','AT_RISK','FAILED','CANCELLED')" json:"thesis_rating"`

	ThesisDocumentURL *string `gorm:"type:text;column:thesis_document_url" json:"thesis_document_url,omitempty"`
	ThesisDocumentKey *string `gorm:"type:text;column:thesis_document_key" json:"-"`

	ThesisCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:thesis_created_at" json:"thesis_created_at"`
	ThesisUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:thesis_updated_at" json:"thesis_updated_at"`

	Status      *ThesisStatusModel `gorm:"foreignKey:ThesisStatusID;references:ThesisStatusID" json:"status,omitempty"`
	Supervisors []SupervisorModel  `gorm:"foreignKey:SupervisorThesisID;references:ThesisID;constraint:OnDelete:CASCADE" json:"supervisors,omitempty"`
	Milestones  []MilestoneModel   `gorm:"foreignKey:MilestoneThesisID;references:ThesisID;constraint:OnDelete:CASCADE" json:"milestones,omitempty"`
}

func (ThesisModel) TableName() string { return "theses" }

func (m *ThesisModel) BeforeSave(tx *gorm.DB) error {
	m.ThesisTitle = strings.TrimSpace(m.ThesisTitle)
	if m.ThesisRating == "" {
		m.ThesisRating = RatingOngoing
	}
	return nil
}

// HasSupervisor: lecturerID termasuk pembimbing (butuh Supervisors ter-preload).
func (m *ThesisModel) HasSupervisor(lecturerID uuid.UUID) bool {
	for _, s := range m.Supervisors {
		if s.SupervisorLecturerID == lecturerID {
			return true
		}
	}
	return false
}
