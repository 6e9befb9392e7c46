package details

import (
	AvailabilityRoutes "skripsiku_backend/internals/features/lecturers/availabilities/route"
	ThesisRoutes "skripsiku_backend/internals/features/theses/theses/route"
	TopicRoutes "skripsiku_backend/internals/features/theses/topics/route"
	RequirementRoutes "skripsiku_backend/internals/features/yudisium/requirements/route"

	"github.com/gofiber/fiber/v2"
)

// /api/u/...
func ThesisPrivateRoutes(api fiber.Router, d ThesisRoutes.Deps) {
	TopicRoutes.TopicUserRoutes(api, d.DB)
	AvailabilityRoutes.AvailabilityUserRoutes(api, d.DB)
	RequirementRoutes.RequirementUserRoutes(api, d.DB)
	ThesisRoutes.ThesisUserRoutes(api, d)
}

// /api/lecturer/...
func ThesisLecturerRoutes(api fiber.Router, d ThesisRoutes.Deps) {
	AvailabilityRoutes.AvailabilityLecturerRoutes(api, d.DB)
	ThesisRoutes.ThesisLecturerRoutes(api, d)
}

// /api/admin/...
func ThesisAdminRoutes(api fiber.Router, d ThesisRoutes.Deps) {
	TopicRoutes.TopicAdminRoutes(api, d.DB)
	RequirementRoutes.RequirementAdminRoutes(api, d.DB)
	ThesisRoutes.ThesisAdminRoutes(api, d)
}
