package service

import (
	"context"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/academics/cpmk/dto"
	"skripsiku_backend/internals/features/academics/cpmk/model"
	"skripsiku_backend/internals/features/academics/cpmk/repository"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
)

type CpmkService struct {
	Repo repository.Repository
}

func NewCpmkService(repo repository.Repository) *CpmkService {
	return &CpmkService{Repo: repo}
}

func (s *CpmkService) List(ctx context.Context, q dto.ListCpmkQuery) ([]model.CpmkModel, helper.Pagination, error) {
	p := helper.NormalizePaging(q.Page, q.PerPage, 20, 200)
	rows, total, err := s.Repo.List(ctx, q, p.Limit, p.Offset)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	return rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

func (s *CpmkService) Get(ctx context.Context, id uuid.UUID) (*model.CpmkModel, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *CpmkService) validateRefs(ctx context.Context, m *model.CpmkModel, self uuid.UUID, codeChanged bool) error {
	if codeChanged {
		taken, err := s.Repo.CodeExists(ctx, m.CpmkCode, self)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflictf("Kode CPMK %s sudah dipakai", m.CpmkCode)
		}
	}
	if m.CpmkCplID != nil {
		ok, err := s.Repo.CplExists(ctx, *m.CpmkCplID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("CPL yang dirujuk tidak ditemukan")
		}
	}
	return nil
}

func (s *CpmkService) Create(ctx context.Context, req dto.CreateCpmkRequest) (*model.CpmkModel, error) {
	req.Normalize()
	m := req.ToModel()
	if err := s.validateRefs(ctx, m, uuid.Nil, true); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CpmkService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCpmkRequest) (*model.CpmkModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(m)
	if err := s.validateRefs(ctx, m, id, req.CpmkCode != nil); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CpmkService) Toggle(ctx context.Context, id uuid.UUID) (*model.CpmkModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.CpmkIsActive = !m.CpmkIsActive
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete ditolak selama masih ada kriteria penilaian yang memakai CPMK ini.
func (s *CpmkService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.Repo.CountCriteriaRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflictf("CPMK masih dipakai oleh %d kriteria penilaian", n)
	}
	return s.Repo.Delete(ctx, id)
}
