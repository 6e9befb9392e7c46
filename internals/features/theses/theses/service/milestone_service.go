package service

import (
	"context"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/theses/theses/dto"
	"skripsiku_backend/internals/features/theses/theses/model"
	"skripsiku_backend/internals/helpers/apperr"
)

func (s *ThesisService) ListMilestones(ctx context.Context, actor Actor, thesisID uuid.UUID) ([]model.MilestoneModel, error) {
	if _, err := s.Get(ctx, actor, thesisID); err != nil {
		return nil, err
	}
	return s.Repo.ListMilestones(ctx, thesisID)
}

func (s *ThesisService) CreateMilestone(ctx context.Context, studentID, thesisID uuid.UUID, req dto.CreateMilestoneRequest) (*model.MilestoneModel, error) {
	if _, err := s.ownedActiveThesis(ctx, studentID, thesisID); err != nil {
		return nil, err
	}
	m := req.ToModel(thesisID)
	if err := s.Repo.CreateMilestone(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMilestone: progress hanya boleh naik.
func (s *ThesisService) UpdateMilestone(ctx context.Context, studentID, milestoneID uuid.UUID, req dto.UpdateMilestoneRequest) (*model.MilestoneModel, error) {
	m, err := s.Repo.FindMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedActiveThesis(ctx, studentID, m.MilestoneThesisID); err != nil {
		return nil, err
	}
	if req.MilestoneProgress != nil && *req.MilestoneProgress < m.MilestoneProgress {
		return nil, apperr.Validationf("Progress tidak boleh turun dari %d%%", m.MilestoneProgress)
	}
	req.Apply(m)
	m.MilestoneStatus = model.StatusForProgress(m.MilestoneProgress)
	if err := s.Repo.SaveMilestone(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
