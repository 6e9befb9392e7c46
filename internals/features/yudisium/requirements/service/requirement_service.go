package service

import (
	"context"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/yudisium/requirements/dto"
	"skripsiku_backend/internals/features/yudisium/requirements/model"
	"skripsiku_backend/internals/features/yudisium/requirements/repository"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
)

type RequirementService struct {
	Repo repository.Repository
}

func NewRequirementService(repo repository.Repository) *RequirementService {
	return &RequirementService{Repo: repo}
}

func (s *RequirementService) List(ctx context.Context, q dto.ListRequirementQuery) ([]model.RequirementModel, error) {
	return s.Repo.List(ctx, q)
}

func (s *RequirementService) Get(ctx context.Context, id uuid.UUID) (*model.RequirementModel, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *RequirementService) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	taken, err := s.Repo.NameExists(ctx, name, self)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflictf("Syarat yudisium %q sudah ada", name)
	}
	return nil
}

func (s *RequirementService) Create(ctx context.Context, req dto.CreateRequirementRequest) (*model.RequirementModel, error) {
	m := req.ToModel()
	if err := s.ensureUniqueName(ctx, m.RequirementName, uuid.Nil); err != nil {
		return nil, err
	}
	order, err := s.Repo.NextOrder(ctx)
	if err != nil {
		return nil, err
	}
	m.RequirementDisplayOrder = order
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *RequirementService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRequirementRequest) (*model.RequirementModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(m)
	if req.RequirementName != nil {
		if err := s.ensureUniqueName(ctx, m.RequirementName, id); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *RequirementService) Toggle(ctx context.Context, id uuid.UUID) (*model.RequirementModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.RequirementIsActive = !m.RequirementIsActive
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *RequirementService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.Delete(ctx, id)
}

// Reorder: urutan = index+1, seluruh daftar wajib dikirim.
func (s *RequirementService) Reorder(ctx context.Context, req dto.ReorderRequirementRequest) ([]model.RequirementModel, error) {
	err := s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		all, err := tx.AllIDs(ctx)
		if err != nil {
			return err
		}
		if err := helper.CheckReorderIDs(req.IDs, all); err != nil {
			return err
		}
		for i, id := range req.IDs {
			if err := tx.SetOrder(ctx, id, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.List(ctx, dto.ListRequirementQuery{})
}
