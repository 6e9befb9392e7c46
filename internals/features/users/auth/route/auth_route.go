// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/users/auth/controller"
	authRepo "skripsiku_backend/internals/features/users/auth/repository"
	"skripsiku_backend/internals/features/users/auth/service"
	rateLimiter "skripsiku_backend/internals/middlewares"
	authMiddleware "skripsiku_backend/internals/middlewares/auth"
)

// Base: /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(service.NewAuthService(authRepo.New(db)))

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)

	// 🔐 Protected
	protected := baseAuth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)
}
