package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "skripsiku_backend/internals/features/users/user/route"
	"skripsiku_backend/internals/helpers/oss"
)

// /api/u/me/...
func UserPrivateRoutes(api fiber.Router, db *gorm.DB, st oss.Storage) {
	userRoute.UserRoutes(api, db, st)
}

// /api/admin/users, /api/admin/students/import
func UserAdminRoutes(api fiber.Router, db *gorm.DB, st oss.Storage) {
	userRoute.UserAdminRoutes(api, db, st)
}
