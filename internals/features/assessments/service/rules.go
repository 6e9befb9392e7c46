package service

import (
	"github.com/google/uuid"

	"skripsiku_backend/internals/features/assessments/model"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
)

// CheckCap menolak bila maxScore baru melebihi sisa anggaran scope.
func CheckCap(scope model.Scope, currentSum, newMax int) error {
	remaining := model.MaxTotalScore - currentSum
	if newMax > remaining {
		if remaining < 0 {
			remaining = 0
		}
		return apperr.Conflictf("Total skor maksimum %s melebihi %d (terpakai %d, sisa %d)",
			scope.Key(), model.MaxTotalScore, currentSum, remaining)
	}
	return nil
}

// RangesOverlap untuk rentang tertutup [a,b] dan [c,d].
func RangesOverlap(a, b, c, d int) bool {
	return !(b < c || a > d)
}

func CheckRubricRange(minScore, maxScore, criteriaMax int) error {
	switch {
	case minScore < 0:
		return apperr.Validation("Skor minimum rubrik tidak boleh negatif")
	case minScore > maxScore:
		return apperr.Validation("Skor minimum rubrik tidak boleh melebihi skor maksimum")
	case maxScore > criteriaMax:
		return apperr.Validationf("Skor maksimum rubrik tidak boleh melebihi skor maksimum kriteria (%d)", criteriaMax)
	}
	return nil
}

// CheckNoOverlap membandingkan r dengan rubrik lain di kriteria yang sama.
func CheckNoOverlap(r *model.RubricModel, siblings []model.RubricModel) error {
	for _, o := range siblings {
		if o.RubricID == r.RubricID {
			continue
		}
		if RangesOverlap(r.RubricMinScore, r.RubricMaxScore, o.RubricMinScore, o.RubricMaxScore) {
			return apperr.Validationf("Rentang [%d, %d] bertabrakan dengan rubrik %q [%d, %d]",
				r.RubricMinScore, r.RubricMaxScore, o.RubricLabel, o.RubricMinScore, o.RubricMaxScore)
		}
	}
	return nil
}

// CheckReorderIDs: tidak boleh kosong, duplikat, atau di luar himpunan allowed.
func CheckReorderIDs(ids, allowed []uuid.UUID) error {
	return helper.CheckReorderIDs(ids, allowed)
}
