package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/configs"
	"skripsiku_backend/internals/features/documents/templates/controller"
	"skripsiku_backend/internals/features/documents/templates/repository"
	"skripsiku_backend/internals/features/documents/templates/service"
	"skripsiku_backend/internals/helpers/oss"
)

// /api/admin/documents/templates
func TemplateAdminRoutes(r fiber.Router, db *gorm.DB, st oss.Storage) {
	conv := service.NewGotenbergConverter(configs.PDFConverterURL, configs.PDFConverterTimeout)
	ctl := controller.NewTemplateController(service.NewTemplateService(repository.New(db), st, conv))

	g := r.Group("/documents/templates")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Upload)
	g.Get("/:key", ctl.Get)
	g.Patch("/:key/toggle", ctl.Toggle)
	g.Delete("/:key", ctl.Delete)
	g.Post("/:key/generate", ctl.Generate)
	g.Get("/:key/generations", ctl.Generations)
}
