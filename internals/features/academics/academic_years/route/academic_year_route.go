package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/academics/academic_years/controller"
	"skripsiku_backend/internals/features/academics/academic_years/repository"
	"skripsiku_backend/internals/features/academics/academic_years/service"
)

func newController(db *gorm.DB) *controller.AcademicYearController {
	return controller.NewAcademicYearController(service.NewAcademicYearService(repository.New(db)))
}

func AcademicYearUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/academic-years")
	g.Get("/", ctl.List)
	g.Get("/active", ctl.Active)
	g.Get("/:id", ctl.Get)
}

func AcademicYearAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/academic-years")
	g.Get("/", ctl.List)
	g.Get("/active", ctl.Active)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/activate", ctl.Activate)
	g.Delete("/:id", ctl.Delete)
}
