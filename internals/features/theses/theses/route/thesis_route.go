package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skripsiku_backend/internals/constants"
	notifRepo "skripsiku_backend/internals/features/home/notifications/repository"
	notifService "skripsiku_backend/internals/features/home/notifications/service"
	"skripsiku_backend/internals/features/theses/theses/controller"
	"skripsiku_backend/internals/features/theses/theses/model"
	"skripsiku_backend/internals/features/theses/theses/repository"
	"skripsiku_backend/internals/features/theses/theses/service"
	userRepo "skripsiku_backend/internals/features/users/user/repository"
	"skripsiku_backend/internals/helpers/oss"
	authMiddleware "skripsiku_backend/internals/middlewares/auth"
)

// Deps dibagi dengan main (hub websocket & storage satu instance).
type Deps struct {
	DB      *gorm.DB
	Storage oss.Storage
	Hub     *notifService.Hub
}

func newController(d Deps) *controller.ThesisController {
	repo := repository.New(d.DB)
	notifier := notifService.NewDefaultNotifier(notifRepo.New(d.DB), d.Hub)
	return controller.NewThesisController(
		service.NewThesisService(repo, d.Storage, notifier),
		NewStatusJob(d),
	)
}

// NewStatusJob dipakai juga oleh scheduler & CLI.
func NewStatusJob(d Deps) *service.StatusJob {
	return service.NewStatusJob(
		repository.New(d.DB),
		userRepo.New(d.DB),
		notifService.NewDefaultNotifier(notifRepo.New(d.DB), d.Hub),
	)
}

// /api/u/...
func ThesisUserRoutes(r fiber.Router, d Deps) {
	ctl := newController(d)
	onlyStudent := authMiddleware.OnlyRoles(constants.RoleErrorStudent("skripsi"), constants.RoleMahasiswa)

	g := r.Group("/theses")
	g.Get("/", ctl.List)
	g.Get("/statuses", ctl.Statuses)
	g.Get("/:id", ctl.Get)
	g.Get("/:id/milestones", ctl.ListMilestones)
	g.Get("/:id/guidances", ctl.ListGuidances)

	g.Post("/:id/milestones", onlyStudent, ctl.CreateMilestone)
	g.Post("/:id/guidances", onlyStudent, ctl.RequestGuidance)
	g.Post("/:id/document", onlyStudent, ctl.UploadDocument)
	r.Patch("/milestones/:id", onlyStudent, ctl.UpdateMilestone)

	// mahasiswa pemilik atau dosen pembimbing; dicek di service
	r.Patch("/guidances/:id/cancel", ctl.GuidanceAction(model.GuidanceCancelled))
}

// /api/lecturer/...
func ThesisLecturerRoutes(r fiber.Router, d Deps) {
	ctl := newController(d)
	g := r.Group("/guidances")
	g.Patch("/:id/accept", ctl.AcceptGuidance)
	g.Patch("/:id/reject", ctl.GuidanceAction(model.GuidanceRejected))
	g.Patch("/:id/complete", ctl.GuidanceAction(model.GuidanceCompleted))
}

// /api/admin/...
func ThesisAdminRoutes(r fiber.Router, d Deps) {
	ctl := newController(d)
	g := r.Group("/theses")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Register)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id/status", ctl.ChangeStatus)

	r.Post("/thesis-status/run", ctl.RunStatusJob)
}
