package service

import (
	"context"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/assessments/dto"
	"skripsiku_backend/internals/features/assessments/model"
	"skripsiku_backend/internals/features/assessments/repository"
	"skripsiku_backend/internals/helpers/apperr"
)

type AssessmentService struct {
	Repo repository.Repository
}

func NewAssessmentService(repo repository.Repository) *AssessmentService {
	return &AssessmentService{Repo: repo}
}

/* ===============================
   Criteria
=================================*/

func (s *AssessmentService) ListCriteria(ctx context.Context, q dto.ListCriteriaQuery) ([]model.CriteriaModel, error) {
	return s.Repo.ListCriteria(ctx, q)
}

func (s *AssessmentService) GetCriteria(ctx context.Context, id uuid.UUID) (*model.CriteriaModel, error) {
	return s.Repo.FindCriteria(ctx, id)
}

func (s *AssessmentService) Budget(ctx context.Context, q dto.BudgetQuery) (*dto.BudgetResponse, error) {
	scope := model.ScopeOf(q.AppliesTo, q.Role)
	used, err := s.Repo.ActiveMaxScoreTotal(ctx, scope)
	if err != nil {
		return nil, err
	}
	remaining := model.MaxTotalScore - used
	if remaining < 0 {
		remaining = 0
	}
	return &dto.BudgetResponse{
		AppliesTo: scope.AppliesTo,
		Roles:     scope.Roles,
		Used:      used,
		Remaining: remaining,
		Max:       model.MaxTotalScore,
	}, nil
}

// checkScopeCap: dipanggil di dalam transaksi, hanya untuk kriteria aktif.
func checkScopeCap(ctx context.Context, tx repository.Repository, m *model.CriteriaModel) error {
	if !m.CriteriaIsActive {
		return nil
	}
	scope := m.Scope()
	if err := tx.LockScope(ctx, scope); err != nil {
		return err
	}
	sum, err := tx.SumActiveMaxScore(ctx, scope, m.CriteriaID)
	if err != nil {
		return err
	}
	return CheckCap(scope, sum, m.CriteriaMaxScore)
}

func checkCpmk(ctx context.Context, tx repository.Repository, id uuid.UUID) error {
	ok, err := tx.CpmkExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("CPMK yang dirujuk tidak ditemukan")
	}
	return nil
}

func (s *AssessmentService) CreateCriteria(ctx context.Context, req dto.CreateCriteriaRequest) (*model.CriteriaModel, error) {
	m := req.ToModel()
	err := s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := checkCpmk(ctx, tx, m.CriteriaCpmkID); err != nil {
			return err
		}
		if err := checkScopeCap(ctx, tx, m); err != nil {
			return err
		}
		order, err := tx.NextCriteriaOrder(ctx, m.CriteriaAppliesTo, m.CriteriaRole)
		if err != nil {
			return err
		}
		m.CriteriaDisplayOrder = order
		return tx.CreateCriteria(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AssessmentService) UpdateCriteria(ctx context.Context, id uuid.UUID, req dto.UpdateCriteriaRequest) (*model.CriteriaModel, error) {
	var out *model.CriteriaModel
	err := s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		m, err := tx.LockCriteria(ctx, id)
		if err != nil {
			return err
		}
		prevScope := m.Scope()
		req.Apply(m)

		if req.CriteriaCpmkID != nil {
			if err := checkCpmk(ctx, tx, m.CriteriaCpmkID); err != nil {
				return err
			}
		}
		if hi := m.MaxRubricScore(); m.CriteriaMaxScore < hi {
			return apperr.Validationf("Skor maksimum kriteria tidak boleh di bawah skor rubrik tertinggi (%d)", hi)
		}
		if err := checkScopeCap(ctx, tx, m); err != nil {
			return err
		}
		if m.Scope().Key() != prevScope.Key() {
			order, err := tx.NextCriteriaOrder(ctx, m.CriteriaAppliesTo, m.CriteriaRole)
			if err != nil {
				return err
			}
			m.CriteriaDisplayOrder = order
		}
		if err := tx.SaveCriteria(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleCriteria: mengaktifkan menjalankan ulang cek anggaran; menonaktifkan selalu lolos.
func (s *AssessmentService) ToggleCriteria(ctx context.Context, id uuid.UUID) (*model.CriteriaModel, error) {
	var out *model.CriteriaModel
	err := s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		m, err := tx.LockCriteria(ctx, id)
		if err != nil {
			return err
		}
		m.CriteriaIsActive = !m.CriteriaIsActive
		if err := checkScopeCap(ctx, tx, m); err != nil {
			return err
		}
		if err := tx.SaveCriteria(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AssessmentService) DeleteCriteria(ctx context.Context, id uuid.UUID) error {
	return s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		if _, err := tx.LockCriteria(ctx, id); err != nil {
			return err
		}
		n, err := tx.CountScoresByCriteria(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflictf("Kriteria sudah dipakai pada %d penilaian dan tidak bisa dihapus", n)
		}
		return tx.DeleteCriteria(ctx, id)
	})
}

// ReorderCriteria menulis display_order = index+1 untuk scope (applies_to, role).
func (s *AssessmentService) ReorderCriteria(ctx context.Context, req dto.ReorderCriteriaRequest) ([]model.CriteriaModel, error) {
	err := s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		allowed, err := tx.CriteriaIDsInScope(ctx, req.AppliesTo, req.Role)
		if err != nil {
			return err
		}
		if err := CheckReorderIDs(req.IDs, allowed); err != nil {
			return err
		}
		for i, id := range req.IDs {
			if err := tx.SetCriteriaOrder(ctx, id, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.ListCriteria(ctx, dto.ListCriteriaQuery{AppliesTo: req.AppliesTo, Role: req.Role})
}

/* ===============================
   Rubrics
=================================*/

func (s *AssessmentService) ListRubrics(ctx context.Context, criteriaID uuid.UUID) ([]model.RubricModel, error) {
	if _, err := s.Repo.FindCriteria(ctx, criteriaID); err != nil {
		return nil, err
	}
	return s.Repo.ListRubrics(ctx, criteriaID)
}

func validateRubric(r *model.RubricModel, c *model.CriteriaModel) error {
	if err := CheckRubricRange(r.RubricMinScore, r.RubricMaxScore, c.CriteriaMaxScore); err != nil {
		return err
	}
	return CheckNoOverlap(r, c.Rubrics)
}

func (s *AssessmentService) CreateRubric(ctx context.Context, criteriaID uuid.UUID, req dto.CreateRubricRequest) (*model.RubricModel, error) {
	r := req.ToModel(criteriaID)
	err := s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		c, err := tx.LockCriteria(ctx, criteriaID)
		if err != nil {
			return err
		}
		if err := validateRubric(r, c); err != nil {
			return err
		}
		order, err := tx.NextRubricOrder(ctx, criteriaID)
		if err != nil {
			return err
		}
		r.RubricDisplayOrder = order
		return tx.CreateRubric(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *AssessmentService) UpdateRubric(ctx context.Context, id uuid.UUID, req dto.UpdateRubricRequest) (*model.RubricModel, error) {
	var out *model.RubricModel
	err := s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		r, err := tx.FindRubric(ctx, id)
		if err != nil {
			return err
		}
		c, err := tx.LockCriteria(ctx, r.RubricCriteriaID)
		if err != nil {
			return err
		}
		req.Apply(r)
		if err := validateRubric(r, c); err != nil {
			return err
		}
		if err := tx.SaveRubric(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AssessmentService) DeleteRubric(ctx context.Context, id uuid.UUID) error {
	return s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		if _, err := tx.FindRubric(ctx, id); err != nil {
			return err
		}
		n, err := tx.CountScoresByRubric(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflictf("Rubrik sudah dipakai pada %d penilaian dan tidak bisa dihapus", n)
		}
		return tx.DeleteRubric(ctx, id)
	})
}

func (s *AssessmentService) ReorderRubrics(ctx context.Context, criteriaID uuid.UUID, ids []uuid.UUID) ([]model.RubricModel, error) {
	err := s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		c, err := tx.LockCriteria(ctx, criteriaID)
		if err != nil {
			return err
		}
		allowed := make([]uuid.UUID, 0, len(c.Rubrics))
		for _, r := range c.Rubrics {
			allowed = append(allowed, r.RubricID)
		}
		if err := CheckReorderIDs(ids, allowed); err != nil {
			return err
		}
		for i, id := range ids {
			if err := tx.SetRubricOrder(ctx, id, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.ListRubrics(ctx, criteriaID)
}
