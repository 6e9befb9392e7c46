package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/lecturers/availabilities/controller"
	"skripsiku_backend/internals/features/lecturers/availabilities/repository"
	"skripsiku_backend/internals/features/lecturers/availabilities/service"
)

func newController(db *gorm.DB) *controller.AvailabilityController {
	return controller.NewAvailabilityController(service.NewAvailabilityService(repository.New(db)))
}

// Semua user login: lihat slot aktif dosen
func AvailabilityUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	r.Get("/lecturers/:lecturer_id/availabilities", ctl.ListPublic)
}

// Dosen: kelola slot sendiri (router sudah dibatasi role dosen)
func AvailabilityLecturerRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/availabilities")
	g.Get("/", ctl.ListMine)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/toggle", ctl.Toggle)
	g.Delete("/:id", ctl.Delete)
}
