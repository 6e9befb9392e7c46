package details

import (
	AcademicYearRoutes "skripsiku_backend/internals/features/academics/academic_years/route"
	CplRoutes "skripsiku_backend/internals/features/academics/cpl/route"
	CpmkRoutes "skripsiku_backend/internals/features/academics/cpmk/route"
	AssessmentRoutes "skripsiku_backend/internals/features/assessments/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Contoh akses: /api/u/cpl, /api/u/academic-years/active
func AcademicPrivateRoutes(api fiber.Router, db *gorm.DB) {
	AcademicYearRoutes.AcademicYearUserRoutes(api, db)
	CplRoutes.CplUserRoutes(api, db)
	CpmkRoutes.CpmkUserRoutes(api, db)
	AssessmentRoutes.AssessmentUserRoutes(api, db)
}

// Contoh akses: /api/admin/cpl, /api/admin/assessment-criteria
func AcademicAdminRoutes(api fiber.Router, db *gorm.DB) {
	AcademicYearRoutes.AcademicYearAdminRoutes(api, db)
	CplRoutes.CplAdminRoutes(api, db)
	CpmkRoutes.CpmkAdminRoutes(api, db)
	AssessmentRoutes.AssessmentAdminRoutes(api, db)
}
