package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/assessments/dto"
	"skripsiku_backend/internals/features/assessments/model"
	"skripsiku_backend/internals/helpers/apperr"
)

// SubmitScore menyimpan (atau memperbarui) nilai dosen untuk satu kriteria.
func (s *AssessmentService) SubmitScore(ctx context.Context, assessorID uuid.UUID, req dto.SubmitScoreRequest) (*model.ScoreModel, error) {
	ok, err := s.Repo.ThesisExists(ctx, req.ThesisID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Skripsi tidak ditemukan")
	}

	c, err := s.Repo.FindCriteria(ctx, req.CriteriaID)
	if err != nil {
		return nil, err
	}
	if !c.CriteriaIsActive {
		return nil, apperr.Validation("Kriteria penilaian sedang nonaktif")
	}

	score := *req.Score
	if score < 0 || score > c.CriteriaMaxScore {
		return nil, apperr.Validationf("Nilai harus di antara 0 dan %d", c.CriteriaMaxScore)
	}

	if req.RubricID != nil {
		var rubric *model.RubricModel
		for i := range c.Rubrics {
			if c.Rubrics[i].RubricID == *req.RubricID {
				rubric = &c.Rubrics[i]
				break
			}
		}
		if rubric == nil {
			return nil, apperr.Validation("Rubrik bukan milik kriteria ini")
		}
		if !rubric.Contains(score) {
			return nil, apperr.Validationf("Nilai %d di luar rentang rubrik %q [%d, %d]",
				score, rubric.RubricLabel, rubric.RubricMinScore, rubric.RubricMaxScore)
		}
	}

	if c.CriteriaRole == model.RoleSupervisor {
		sup, err := s.Repo.IsSupervisor(ctx, req.ThesisID, assessorID)
		if err != nil {
			return nil, err
		}
		if !sup {
			return nil, apperr.Forbidden("Hanya pembimbing skripsi ini yang boleh mengisi kriteria pembimbing")
		}
	}

	m := req.ToModel(assessorID)
	if err := s.Repo.UpsertScore(ctx, m); err != nil {
		return nil, err
	}
	m.Criteria = c
	return m, nil
}

func (s *AssessmentService) ThesisScores(ctx context.Context, thesisID uuid.UUID, appliesTo string) (*dto.ThesisScoresResponse, error) {
	rows, err := s.Repo.ListScores(ctx, thesisID, appliesTo)
	if err != nil {
		return nil, err
	}
	return &dto.ThesisScoresResponse{Scores: rows, Totals: SumByAssessor(rows)}, nil
}

// SumByAssessor menjumlah nilai per (penilai, applies_to), urut stabil.
func SumByAssessor(rows []model.ScoreModel) []dto.AssessorTotal {
	type key struct {
		assessor  uuid.UUID
		appliesTo string
	}
	sums := map[key]int{}
	for _, r := range rows {
		appliesTo := ""
		if r.Criteria != nil {
			appliesTo = r.Criteria.CriteriaAppliesTo
		}
		sums[key{r.ScoreAssessorID, appliesTo}] += r.ScoreValue
	}
	out := make([]dto.AssessorTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, dto.AssessorTotal{AssessorID: k.assessor, AppliesTo: k.appliesTo, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppliesTo != out[j].AppliesTo {
			return out[i].AppliesTo < out[j].AppliesTo
		}
		return out[i].AssessorID.String() < out[j].AssessorID.String()
	})
	return out
}
