package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/home/notifications/controller"
	"skripsiku_backend/internals/features/home/notifications/repository"
	"skripsiku_backend/internals/features/home/notifications/service"
	authMiddleware "skripsiku_backend/internals/middlewares/auth"
)

// /api/u/notifications
func NotificationUserRoutes(user fiber.Router, db *gorm.DB, hub *service.Hub) {
	ctrl := controller.NewNotificationController(service.NewNotificationService(repository.New(db)), hub)

	notification := user.Group("/notifications")
	notification.Get("/", ctrl.ListMine)
	notification.Patch("/:id/read", ctrl.MarkRead)
}

// /ws/notifications
func NotificationWSRoutes(app *fiber.App, db *gorm.DB, hub *service.Hub) {
	ctrl := controller.NewNotificationController(service.NewNotificationService(repository.New(db)), hub)

	ws := app.Group("/ws", controller.UpgradeGuard)
	ws.Get("/notifications", authMiddleware.AuthMiddlewareWS(db), ctrl.Stream())
}
