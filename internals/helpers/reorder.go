package helper

import (
	"github.com/google/uuid"

	"skripsiku_backend/internals/helpers/apperr"
)

// CheckReorderIDs memvalidasi daftar urutan baru (all-or-nothing).
// ids harus tidak kosong, tanpa duplikat, semuanya ada di allowed, dan memuat
// seluruh allowed; daftar sebagian akan meninggalkan display_order ganda.
func CheckReorderIDs(ids, allowed []uuid.UUID) error {
	if len(ids) == 0 {
		return apperr.Validation("Daftar id tidak boleh kosong")
	}
	set := make(map[uuid.UUID]struct{}, len(allowed))
	for _, id := range allowed {
		set[id] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return apperr.Validationf("id %s dikirim lebih dari sekali", id)
		}
		seen[id] = struct{}{}
		if _, ok := set[id]; !ok {
			return apperr.Validationf("id %s tidak ditemukan pada daftar ini", id)
		}
	}
	if len(ids) != len(set) {
		return apperr.Validationf("Urutan harus memuat semua %d id (dikirim %d)", len(set), len(ids))
	}
	return nil
}
