package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/theses/topics/controller"
	"skripsiku_backend/internals/features/theses/topics/repository"
	"skripsiku_backend/internals/features/theses/topics/service"
)

func newController(db *gorm.DB) *controller.TopicController {
	return controller.NewTopicController(service.NewTopicService(repository.New(db)))
}

// Read-only (semua user login)
func TopicUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/topics")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}

// Admin/sekdep/kadep
func TopicAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newController(db)
	g := r.Group("/topics")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/toggle", ctl.Toggle)
	g.Delete("/:id", ctl.Delete)
}
