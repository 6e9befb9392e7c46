package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/users/user/controller"
	"skripsiku_backend/internals/features/users/user/repository"
	"skripsiku_backend/internals/features/users/user/service"
	"skripsiku_backend/internals/helpers/oss"
)

// /api/u/me/...
func UserRoutes(r fiber.Router, db *gorm.DB, st oss.Storage) {
	ctrl := controller.NewUserController(service.NewUserService(repository.New(db), st))
	r.Post("/me/avatar", ctrl.UploadAvatar)
}

// /api/admin/... (sudah dibatasi admin di group)
func UserAdminRoutes(r fiber.Router, db *gorm.DB, st oss.Storage) {
	ctrl := controller.NewUserController(service.NewUserService(repository.New(db), st))
	r.Get("/users", ctrl.List)
	r.Post("/students/import", ctrl.ImportStudents)
}
