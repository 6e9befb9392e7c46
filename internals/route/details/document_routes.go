package details

import (
	TemplateRoutes "skripsiku_backend/internals/features/documents/templates/route"
	"skripsiku_backend/internals/helpers/oss"
	rateLimiter "skripsiku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// /api/admin/documents/templates/...
func DocumentAdminRoutes(api fiber.Router, db *gorm.DB, st oss.Storage) {
	docs := api.Group("", rateLimiter.DocumentRateLimiter())
	TemplateRoutes.TemplateAdminRoutes(docs, db, st)
}
