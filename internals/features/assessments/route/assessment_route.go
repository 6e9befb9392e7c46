package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/constants"
	"skripsiku_backend/internals/features/assessments/controller"
	"skripsiku_backend/internals/features/assessments/repository"
	"skripsiku_backend/internals/features/assessments/service"
	authMiddleware "skripsiku_backend/internals/middlewares/auth"
)

func newController(db *gorm.DB) *controller.AssessmentController {
	return controller.NewAssessmentController(service.NewAssessmentService(repository.New(db)))
}

// Read-only kriteria & rubrik (semua user login)
func AssessmentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/assessments")
	g.Get("/criteria", ctl.ListCriteria)
	g.Get("/criteria/:id", ctl.GetCriteria)
	g.Get("/criteria/:id/rubrics", ctl.ListRubrics)

	scores := g.Group("/scores",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorLecturer("mengisi nilai"), constants.LecturerRoles),
	)
	scores.Get("/", ctl.ThesisScores)
	scores.Post("/", ctl.SubmitScore)
}

// Admin/sekdep/kadep
func AssessmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/assessments")

	criteria := g.Group("/criteria")
	criteria.Get("/", ctl.ListCriteria)
	criteria.Get("/budget", ctl.Budget)
	criteria.Put("/reorder", ctl.ReorderCriteria)
	criteria.Post("/", ctl.CreateCriteria)
	criteria.Get("/:id", ctl.GetCriteria)
	criteria.Patch("/:id", ctl.UpdateCriteria)
	criteria.Patch("/:id/toggle", ctl.ToggleCriteria)
	criteria.Delete("/:id", ctl.DeleteCriteria)

	criteria.Get("/:id/rubrics", ctl.ListRubrics)
	criteria.Post("/:id/rubrics", ctl.CreateRubric)
	criteria.Put("/:id/rubrics/reorder", ctl.ReorderRubrics)

	rubrics := g.Group("/rubrics")
	rubrics.Patch("/:id", ctl.UpdateRubric)
	rubrics.Delete("/:id", ctl.DeleteRubric)
}
