package service

import (
	"context"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/academics/academic_years/dto"
	"skripsiku_backend/internals/features/academics/academic_years/model"
	"skripsiku_backend/internals/features/academics/academic_years/repository"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
)

var reYear = regexp.MustCompile(`^(\d{4})/(\d{4})$`)

type AcademicYearService struct {
	Repo repository.Repository
}

func NewAcademicYearService(repo repository.Repository) *AcademicYearService {
	return &AcademicYearService{Repo: repo}
}

// ValidateYear: "2024/2025" valid, "2024/2026" atau "24/25" tidak.
func ValidateYear(year string) error {
	m := reYear.FindStringSubmatch(year)
	if m == nil {
		return apperr.Validation("Format tahun akademik harus YYYY/YYYY")
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	if b != a+1 {
		return apperr.Validation("Tahun akademik harus dua tahun berurutan")
	}
	return nil
}

func (s *AcademicYearService) validate(ctx context.Context, m *model.AcademicYearModel, self uuid.UUID, periodChanged bool) error {
	if err := ValidateYear(m.AcademicYearYear); err != nil {
		return err
	}
	if !m.AcademicYearEndDate.After(m.AcademicYearStartDate) {
		return apperr.Validation("Tanggal selesai harus setelah tanggal mulai")
	}
	if periodChanged {
		taken, err := s.Repo.PeriodExists(ctx, m.AcademicYearYear, m.AcademicYearSemester, self)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflictf("Tahun akademik %s sudah ada", m.Label())
		}
	}
	return nil
}

func (s *AcademicYearService) List(ctx context.Context, q dto.ListAcademicYearQuery) ([]model.AcademicYearModel, helper.Pagination, error) {
	p := helper.NormalizePaging(q.Page, q.PerPage, 20, 100)
	rows, total, err := s.Repo.List(ctx, q, p.Limit, p.Offset)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	return rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

func (s *AcademicYearService) Get(ctx context.Context, id uuid.UUID) (*model.AcademicYearModel, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *AcademicYearService) Active(ctx context.Context) (*model.AcademicYearModel, error) {
	return s.Repo.FindActive(ctx)
}

func (s *AcademicYearService) Create(ctx context.Context, req dto.CreateAcademicYearRequest) (*model.AcademicYearModel, error) {
	req.Normalize()
	m, err := req.ToModel()
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, m, uuid.Nil, true); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AcademicYearService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAcademicYearRequest) (*model.AcademicYearModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(m); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, m, id, req.PeriodChanged()); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AcademicYearService) Activate(ctx context.Context, id uuid.UUID) (*model.AcademicYearModel, error) {
	return s.Repo.Activate(ctx, id)
}

func (s *AcademicYearService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if m.AcademicYearIsActive {
		return apperr.Conflict("Tahun akademik aktif tidak bisa dihapus")
	}
	n, err := s.Repo.CountThesisRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflictf("Tahun akademik masih dipakai oleh %d skripsi", n)
	}
	return s.Repo.Delete(ctx, id)
}
