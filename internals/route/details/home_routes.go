package details

import (
	NotificationRoutes "skripsiku_backend/internals/features/home/notifications/route"
	notifService "skripsiku_backend/internals/features/home/notifications/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ✅ Untuk route user login (dengan token)
// Contoh akses: /api/u/notifications
func HomePrivateRoutes(api fiber.Router, db *gorm.DB, hub *notifService.Hub) {
	NotificationRoutes.NotificationUserRoutes(api, db, hub)
}

// Websocket push notifikasi: /ws/notifications?token=...
func HomeWSRoutes(app *fiber.App, db *gorm.DB, hub *notifService.Hub) {
	NotificationRoutes.NotificationWSRoutes(app, db, hub)
}
