package constants

import "fmt"

// Role pengguna (disimpan di users.role dan klaim JWT "role")
const (
	RoleAdmin     = "admin"
	RoleSekdep    = "sekdep" // sekretaris departemen
	RoleKadep     = "kadep"  // ketua departemen
	RoleDosen     = "dosen"
	RoleMahasiswa = "mahasiswa"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyManagersCanAccess  = "❌ Hanya admin atau pimpinan departemen yang boleh mengakses fitur %s."
	ErrOnlyLecturersCanAccess = "❌ Hanya dosen yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess  = "❌ Hanya mahasiswa yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

func RoleErrorLecturer(feature string) string {
	return fmt.Sprintf(ErrOnlyLecturersCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleSekdep,
		RoleKadep,
		RoleDosen,
		RoleMahasiswa,
	}

	// pengelola data akademik (CPL/CPMK, rubrik, tahun ajaran, template)
	ManagerRoles = []string{
		RoleAdmin,
		RoleSekdep,
		RoleKadep,
	}

	// penilai & pembimbing
	LecturerRoles = []string{
		RoleDosen,
		RoleKadep,
		RoleSekdep,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	StudentOnly = []string{
		RoleMahasiswa,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
