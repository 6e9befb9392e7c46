package model

import "strings"

// MaxTotalScore adalah anggaran skor per scope.
const MaxTotalScore = 100

// Scope = (applies_to, role[]) yang berbagi satu anggaran 100 poin.
// Sidang (defence) menggabungkan penguji dan pembimbing dalam satu anggaran.
type Scope struct {
	AppliesTo string
	Roles     []string
}

func ScopeOf(appliesTo, role string) Scope {
	appliesTo = strings.ToLower(strings.TrimSpace(appliesTo))
	role = strings.ToLower(strings.TrimSpace(role))
	if appliesTo == AppliesToDefence && (role == RoleExaminer || role == RoleSupervisor) {
		return Scope{AppliesTo: appliesTo, Roles: []string{RoleExaminer, RoleSupervisor}}
	}
	return Scope{AppliesTo: appliesTo, Roles: []string{role}}
}

// Key dipakai untuk advisory lock dan pesan error.
func (s Scope) Key() string {
	return s.AppliesTo + "/" + strings.Join(s.Roles, "+")
}

func (s Scope) Has(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}
