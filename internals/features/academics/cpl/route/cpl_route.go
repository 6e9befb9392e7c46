package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/academics/cpl/controller"
	"skripsiku_backend/internals/features/academics/cpl/repository"
	"skripsiku_backend/internals/features/academics/cpl/service"
)

func newController(db *gorm.DB) *controller.CplController {
	return controller.NewCplController(service.NewCplService(repository.New(db)))
}

// Read-only (semua user login)
func CplUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/cpl")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}

// Admin/sekdep/kadep
func CplAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/cpl")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/toggle", ctl.Toggle)
	g.Delete("/:id", ctl.Delete)
}
