package service

import (
	"context"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/academics/cpl/dto"
	"skripsiku_backend/internals/features/academics/cpl/model"
	"skripsiku_backend/internals/features/academics/cpl/repository"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
)

type CplService struct {
	Repo repository.Repository
}

func NewCplService(repo repository.Repository) *CplService {
	return &CplService{Repo: repo}
}

func (s *CplService) List(ctx context.Context, q dto.ListCplQuery) ([]model.CplModel, helper.Pagination, error) {
	p := helper.NormalizePaging(q.Page, q.PerPage, 20, 200)
	rows, total, err := s.Repo.List(ctx, q, p.Limit, p.Offset)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	return rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

func (s *CplService) Get(ctx context.Context, id uuid.UUID) (*model.CplModel, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *CplService) ensureCodeFree(ctx context.Context, code string, self uuid.UUID) error {
	taken, err := s.Repo.CodeExists(ctx, code, self)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflictf("Kode CPL %s sudah dipakai", code)
	}
	return nil
}

func (s *CplService) Create(ctx context.Context, req dto.CreateCplRequest) (*model.CplModel, error) {
	req.Normalize()
	if err := s.ensureCodeFree(ctx, req.CplCode, uuid.Nil); err != nil {
		return nil, err
	}
	m := req.ToModel()
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CplService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCplRequest) (*model.CplModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(m)
	if req.CplCode != nil {
		if err := s.ensureCodeFree(ctx, m.CplCode, id); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CplService) Toggle(ctx context.Context, id uuid.UUID) (*model.CplModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.CplIsActive = !m.CplIsActive
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CplService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.Repo.CountCpmkRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflictf("CPL masih dipakai oleh %d CPMK", n)
	}
	return s.Repo.Delete(ctx, id)
}
