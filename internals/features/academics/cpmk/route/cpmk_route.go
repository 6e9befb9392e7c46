package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/academics/cpmk/controller"
	"skripsiku_backend/internals/features/academics/cpmk/repository"
	"skripsiku_backend/internals/features/academics/cpmk/service"
)

func newController(db *gorm.DB) *controller.CpmkController {
	return controller.NewCpmkController(service.NewCpmkService(repository.New(db)))
}

// Read-only (semua user login)
func CpmkUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/cpmk")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}

// Admin/sekdep/kadep
func CpmkAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/cpmk")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/toggle", ctl.Toggle)
	g.Delete("/:id", ctl.Delete)
}
