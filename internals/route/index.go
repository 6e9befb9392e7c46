// file: internals/route/index.go
package routes

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/constants"
	notifService "skripsiku_backend/internals/features/home/notifications/service"
	ThesisRoutes "skripsiku_backend/internals/features/theses/theses/route"
	thesisService "skripsiku_backend/internals/features/theses/theses/service"
	"skripsiku_backend/internals/helpers/oss"
	authMiddleware "skripsiku_backend/internals/middlewares/auth"
	routeDetails "skripsiku_backend/internals/route/details"
)

var startTime time.Time

// Deps: resource yang dipakai bersama route & scheduler.
type Deps struct {
	DB      *gorm.DB
	Storage oss.Storage
	Hub     *notifService.Hub
}

func (d Deps) thesis() ThesisRoutes.Deps {
	return ThesisRoutes.Deps{DB: d.DB, Storage: d.Storage, Hub: d.Hub}
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	db := d.DB

	BaseRoutes(app)

	// disk lokal (dev): layani file upload langsung
	if ls, ok := d.Storage.(*oss.LocalStorage); ok && strings.HasPrefix(ls.PublicBase, "/") {
		app.Static(ls.PublicBase, ls.Root)
	}

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Setting up LECTURER group (Auth + RoleCheck)...")
	lecturer := app.Group("/api/lecturer",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorLecturer("bimbingan"), constants.LecturerRoles),
	)

	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorManager("administrasi"), constants.ManagerRoles),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserPrivateRoutes(private, db, d.Storage)
	routeDetails.UserAdminRoutes(admin, db, d.Storage)

	log.Println("[INFO] Mounting Notification routes...")
	routeDetails.HomePrivateRoutes(private, db, d.Hub)
	routeDetails.HomeWSRoutes(app, db, d.Hub)

	log.Println("[INFO] Mounting Academic routes...")
	routeDetails.AcademicPrivateRoutes(private, db)
	routeDetails.AcademicAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Thesis routes...")
	routeDetails.ThesisPrivateRoutes(private, d.thesis())
	routeDetails.ThesisLecturerRoutes(lecturer, d.thesis())
	routeDetails.ThesisAdminRoutes(admin, d.thesis())

	log.Println("[INFO] Mounting Document routes...")
	routeDetails.DocumentAdminRoutes(admin, db, d.Storage)
}

// NewStatusJob untuk scheduler & CLI, dirakit dari Deps yang sama.
func NewStatusJob(d Deps) *thesisService.StatusJob {
	return ThesisRoutes.NewStatusJob(d.thesis())
}
