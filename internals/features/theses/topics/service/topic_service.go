package service

import (
	"context"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/theses/topics/dto"
	"skripsiku_backend/internals/features/theses/topics/model"
	"skripsiku_backend/internals/features/theses/topics/repository"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
)

type TopicService struct {
	Repo repository.Repository
}

func NewTopicService(repo repository.Repository) *TopicService {
	return &TopicService{Repo: repo}
}

func (s *TopicService) List(ctx context.Context, q dto.ListTopicQuery) ([]model.TopicModel, helper.Pagination, error) {
	p := helper.NormalizePaging(q.Page, q.PerPage, 20, 200)
	rows, total, err := s.Repo.List(ctx, q, p.Limit, p.Offset)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	return rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

func (s *TopicService) Get(ctx context.Context, id uuid.UUID) (*model.TopicModel, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *TopicService) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	taken, err := s.Repo.NameExists(ctx, name, self)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflictf("Topik %q sudah ada", name)
	}
	return nil
}

func (s *TopicService) Create(ctx context.Context, req dto.CreateTopicRequest) (*model.TopicModel, error) {
	m := req.ToModel()
	if err := s.ensureUniqueName(ctx, m.TopicName, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *TopicService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTopicRequest) (*model.TopicModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(m)
	if req.TopicName != nil {
		if err := s.ensureUniqueName(ctx, m.TopicName, id); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *TopicService) Toggle(ctx context.Context, id uuid.UUID) (*model.TopicModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.TopicIsActive = !m.TopicIsActive
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *TopicService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.Repo.CountThesisRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflictf("Topik masih dipakai oleh %d skripsi", n)
	}
	return s.Repo.Delete(ctx, id)
}
