package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/yudisium/requirements/controller"
	"skripsiku_backend/internals/features/yudisium/requirements/repository"
	"skripsiku_backend/internals/features/yudisium/requirements/service"
)

func newController(db *gorm.DB) *controller.RequirementController {
	return controller.NewRequirementController(service.NewRequirementService(repository.New(db)))
}

func RequirementUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/yudisium-requirements")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}

func RequirementAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/yudisium-requirements")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Put("/reorder", ctl.Reorder)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/toggle", ctl.Toggle)
	g.Delete("/:id", ctl.Delete)
}
