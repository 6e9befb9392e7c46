package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/theses/theses/dto"
	"skripsiku_backend/internals/features/theses/theses/model"
	"skripsiku_backend/internals/helpers/apperr"
)

func (s *ThesisService) ListGuidances(ctx context.Context, actor Actor, thesisID uuid.UUID, q dto.ListGuidanceQuery) ([]model.GuidanceModel, error) {
	if _, err := s.Get(ctx, actor, thesisID); err != nil {
		return nil, err
	}
	return s.Repo.ListGuidances(ctx, thesisID, q.Status)
}

// RequestGuidance: mahasiswa mengajukan bimbingan ke salah satu pembimbingnya.
func (s *ThesisService) RequestGuidance(ctx context.Context, studentID, thesisID uuid.UUID, req dto.RequestGuidanceRequest) (*model.GuidanceModel, error) {
	t, err := s.ownedActiveThesis(ctx, studentID, thesisID)
	if err != nil {
		return nil, err
	}
	lecturerID, err := uuid.Parse(req.SupervisorID)
	if err != nil {
		return nil, apperr.Validation("supervisor_id tidak valid")
	}
	if !t.HasSupervisor(lecturerID) {
		return nil, apperr.Validation("Dosen tersebut bukan pembimbing skripsi ini")
	}

	g := &model.GuidanceModel{
		GuidanceThesisID:     t.ThesisID,
		GuidanceSupervisorID: lecturerID,
		GuidanceStatus:       model.GuidanceRequested,
		GuidanceTopic:        strings.TrimSpace(req.Topic),
		GuidanceStudentNote:  strings.TrimSpace(req.Note),
		GuidanceRequestedAt:  s.Now(),
		GuidanceScheduledAt:  req.PreferredAt,
	}
	if err := s.Repo.CreateGuidance(ctx, g); err != nil {
		return nil, err
	}
	s.notify(ctx, guidanceMessage(lecturerID,
		"Pengajuan bimbingan baru",
		fmt.Sprintf("Mahasiswa mengajukan bimbingan: %s", g.GuidanceTopic), g))
	return g, nil
}

func (s *ThesisService) AcceptGuidance(ctx context.Context, lecturerID, id uuid.UUID, req dto.AcceptGuidanceRequest) (*model.GuidanceModel, error) {
	return s.supervisorTransition(ctx, lecturerID, id, model.GuidanceAccepted, func(g *model.GuidanceModel) error {
		if !req.ScheduledAt.After(s.Now()) {
			return apperr.Validation("Jadwal bimbingan harus di masa depan")
		}
		at := req.ScheduledAt
		g.GuidanceScheduledAt = &at
		g.GuidanceLecturerNote = strings.TrimSpace(req.Note)
		return nil
	})
}

func (s *ThesisService) RejectGuidance(ctx context.Context, lecturerID, id uuid.UUID, req dto.GuidanceNoteRequest) (*model.GuidanceModel, error) {
	return s.supervisorTransition(ctx, lecturerID, id, model.GuidanceRejected, func(g *model.GuidanceModel) error {
		g.GuidanceLecturerNote = strings.TrimSpace(req.Note)
		return nil
	})
}

func (s *ThesisService) CompleteGuidance(ctx context.Context, lecturerID, id uuid.UUID, req dto.GuidanceNoteRequest) (*model.GuidanceModel, error) {
	return s.supervisorTransition(ctx, lecturerID, id, model.GuidanceCompleted, func(g *model.GuidanceModel) error {
		now := s.Now()
		g.GuidanceCompletedAt = &now
		if n := strings.TrimSpace(req.Note); n != "" {
			g.GuidanceLecturerNote = n
		}
		return nil
	})
}

// CancelGuidance boleh dilakukan mahasiswa pemilik atau dosen pembimbing yang dituju.
func (s *ThesisService) CancelGuidance(ctx context.Context, actorID, id uuid.UUID, req dto.GuidanceNoteRequest) (*model.GuidanceModel, error) {
	g, err := s.Repo.FindGuidance(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := s.Repo.FindByID(ctx, g.GuidanceThesisID)
	if err != nil {
		return nil, err
	}
	byStudent := t.ThesisStudentID == actorID
	if !byStudent && g.GuidanceSupervisorID != actorID {
		return nil, apperr.Forbidden("Anda tidak berhak membatalkan bimbingan ini")
	}

	from := g.GuidanceStatus
	if !model.CanTransitionGuidance(from, model.GuidanceCancelled) {
		return nil, apperr.Validationf("Bimbingan berstatus %s tidak bisa dibatalkan", from)
	}
	g.GuidanceStatus = model.GuidanceCancelled
	if n := strings.TrimSpace(req.Note); n != "" && !byStudent {
		g.GuidanceLecturerNote = n
	}
	if err := s.Repo.TransitionGuidance(ctx, g, from); err != nil {
		return nil, err
	}

	to := t.ThesisStudentID
	if byStudent {
		to = g.GuidanceSupervisorID
	}
	s.notify(ctx, guidanceMessage(to, "Bimbingan dibatalkan",
		fmt.Sprintf("Bimbingan \"%s\" dibatalkan", g.GuidanceTopic), g))
	return g, nil
}

func (s *ThesisService) supervisorTransition(ctx context.Context, lecturerID, id uuid.UUID, to string, mutate func(*model.GuidanceModel) error) (*model.GuidanceModel, error) {
	g, err := s.Repo.FindGuidance(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.GuidanceSupervisorID != lecturerID {
		return nil, apperr.Forbidden("Bimbingan ini bukan ditujukan kepada Anda")
	}
	from := g.GuidanceStatus
	if !model.CanTransitionGuidance(from, to) {
		return nil, apperr.Validationf("Status bimbingan tidak bisa berubah dari %s ke %s", from, to)
	}
	if err := mutate(g); err != nil {
		return nil, err
	}
	g.GuidanceStatus = to
	if err := s.Repo.TransitionGuidance(ctx, g, from); err != nil {
		return nil, err
	}

	t, err := s.Repo.FindByID(ctx, g.GuidanceThesisID)
	if err == nil {
		s.notify(ctx, guidanceMessage(t.ThesisStudentID, guidanceTitle(to),
			fmt.Sprintf("Bimbingan \"%s\" %s", g.GuidanceTopic, guidanceVerb(to)), g))
	}
	return g, nil
}

func guidanceTitle(status string) string {
	switch status {
	case model.GuidanceAccepted:
		return "Bimbingan diterima"
	case model.GuidanceRejected:
		return "Bimbingan ditolak"
	case model.GuidanceCompleted:
		return "Bimbingan selesai"
	}
	return "Status bimbingan berubah"
}

func guidanceVerb(status string) string {
	switch status {
	case model.GuidanceAccepted:
		return "diterima pembimbing"
	case model.GuidanceRejected:
		return "ditolak pembimbing"
	case model.GuidanceCompleted:
		return "ditandai selesai"
	}
	return "berubah status menjadi " + status
}
