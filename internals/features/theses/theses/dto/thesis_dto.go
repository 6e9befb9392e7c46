package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/theses/theses/model"
)

type ListThesisQuery struct {
	Rating       string `query:"rating" validate:"omitempty,oneof=ONGOING SLOW AT_RISK FAILED CANCELLED"`
	StatusID     string `query:"status_id" validate:"omitempty,uuid"`
	AcademicYear string `query:"academic_year_id" validate:"omitempty,uuid"`
	Q            string `query:"q"`
	Page         int    `query:"page"`
	PerPage      int    `query:"per_page"`

	// diisi controller sesuai role pemanggil, bukan dari query
	StudentID    *uuid.UUID `query:"-"`
	SupervisorID *uuid.UUID `query:"-"`
}

func (q *ListThesisQuery) Normalize() {
	q.Rating = strings.ToUpper(strings.TrimSpace(q.Rating))
	q.Q = strings.TrimSpace(q.Q)
}

type SupervisorInput struct {
	LecturerID string `json:"lecturer_id" validate:"required,uuid"`
	Role       string `json:"role" validate:"required,oneof=pembimbing_1 pembimbing_2"`
}

// Registrasi skripsi oleh admin/sekdep.
type CreateThesisRequest struct {
	ThesisTitle          string            `json:"thesis_title" validate:"required,min=5,max=255"`
	ThesisStudentID      string            `json:"thesis_student_id" validate:"required,uuid"`
	ThesisTopicID        *string           `json:"thesis_topic_id" validate:"omitempty,uuid"`
	ThesisAcademicYearID *string           `json:"thesis_academic_year_id" validate:"omitempty,uuid"`
	Supervisors          []SupervisorInput `json:"supervisors" validate:"required,min=1,max=2,dive"`
}

func (r *CreateThesisRequest) ToModel() *model.ThesisModel {
	m := &model.ThesisModel{
		ThesisTitle:     strings.TrimSpace(r.ThesisTitle),
		ThesisStudentID: uuid.MustParse(r.ThesisStudentID),
		ThesisRating:    model.RatingOngoing,
	}
	m.ThesisTopicID = optionalUUID(r.ThesisTopicID)
	m.ThesisAcademicYearID = optionalUUID(r.ThesisAcademicYearID)
	for _, s := range r.Supervisors {
		m.Supervisors = append(m.Supervisors, model.SupervisorModel{
			SupervisorLecturerID: uuid.MustParse(s.LecturerID),
			SupervisorRole:       s.Role,
		})
	}
	return m
}

type UpdateThesisStatusRequest struct {
	ThesisStatusID string `json:"thesis_status_id" validate:"required,uuid"`
}

func optionalUUID(s *string) *uuid.UUID {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &id
}

/* ==========================
   Milestone
========================== */

type CreateMilestoneRequest struct {
	MilestoneTitle    string `json:"milestone_title" validate:"required,min=3,max=200"`
	MilestoneNote     string `json:"milestone_note" validate:"omitempty,max=2000"`
	MilestoneProgress *int   `json:"milestone_progress" validate:"omitempty,min=0,max=100"`
}

func (r *CreateMilestoneRequest) ToModel(thesisID uuid.UUID) *model.MilestoneModel {
	m := &model.MilestoneModel{
		MilestoneThesisID: thesisID,
		MilestoneTitle:    strings.TrimSpace(r.MilestoneTitle),
		MilestoneNote:     strings.TrimSpace(r.MilestoneNote),
	}
	if r.MilestoneProgress != nil {
		m.MilestoneProgress = *r.MilestoneProgress
	}
	return m
}

type UpdateMilestoneRequest struct {
	MilestoneTitle    *string `json:"milestone_title" validate:"omitempty,min=3,max=200"`
	MilestoneNote     *string `json:"milestone_note" validate:"omitempty,max=2000"`
	MilestoneProgress *int    `json:"milestone_progress" validate:"omitempty,min=0,max=100"`
}

func (r *UpdateMilestoneRequest) Apply(m *model.MilestoneModel) {
	if r.MilestoneTitle != nil {
		m.MilestoneTitle = strings.TrimSpace(*r.MilestoneTitle)
	}
	if r.MilestoneNote != nil {
		m.MilestoneNote = strings.TrimSpace(*r.MilestoneNote)
	}
	if r.MilestoneProgress != nil {
		m.MilestoneProgress = *r.MilestoneProgress
	}
}

/* ==========================
   Guidance
========================== */

type RequestGuidanceRequest struct {
	SupervisorID string     `json:"supervisor_id" validate:"required,uuid"` // lecturer user id
	Topic        string     `json:"topic" validate:"required,min=3,max=200"`
	Note         string     `json:"note" validate:"omitempty,max=2000"`
	PreferredAt  *time.Time `json:"preferred_at"`
}

type AcceptGuidanceRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Note        string    `json:"note" validate:"omitempty,max=2000"`
}

type GuidanceNoteRequest struct {
	Note string `json:"note" validate:"omitempty,max=2000"`
}

type ListGuidanceQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=requested accepted rejected completed cancelled"`
}

type DocumentResponse struct {
	ThesisDocumentURL string `json:"thesis_document_url"`
}
