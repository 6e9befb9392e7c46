// file: internals/features/theses/theses/controller/thesis_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/constants"
	"skripsiku_backend/internals/features/theses/theses/dto"
	"skripsiku_backend/internals/features/theses/theses/service"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/oss"
)

var pdfRule = oss.UploadRule{
	MaxBytes: constants.MaxThesisPDF,
	Exts:     constants.PDFExts,
	MIMEs:    constants.PDFMIMEs,
}

type ThesisController struct {
	Svc       *service.ThesisService
	Job       *service.StatusJob
	Validator *validator.Validate
}

func NewThesisController(svc *service.ThesisService, job *service.StatusJob) *ThesisController {
	return &ThesisController{Svc: svc, Job: job, Validator: helper.Validator()}
}

func actorFrom(c *fiber.Ctx) (service.Actor, error) {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return service.Actor{}, err
	}
	return service.Actor{ID: id, Role: helper.GetUserRole(c)}, nil
}

// GET /theses?rating=&status_id=&academic_year_id=&q=&page=&per_page=
func (ctl *ThesisController) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var q dto.ListThesisQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, pg, err := ctl.Svc.List(c.UserContext(), actor, q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar skripsi", rows, &pg)
}

func (ctl *ThesisController) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail skripsi", m)
}

// GET /theses/statuses
func (ctl *ThesisController) Statuses(c *fiber.Ctx) error {
	rows, err := ctl.Svc.ListStatuses(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar status skripsi", rows, nil)
}

// POST /api/admin/theses
func (ctl *ThesisController) Register(c *fiber.Ctx) error {
	var req dto.CreateThesisRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Skripsi berhasil didaftarkan", m)
}

// PATCH /api/admin/theses/:id/status
func (ctl *ThesisController) ChangeStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateThesisStatusRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.ChangeStatus(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Status skripsi diperbarui", m)
}

// POST /theses/:id/document (multipart field "file")
func (ctl *ThesisController) UploadDocument(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	fh, _ := c.FormFile("file")
	data, _, err := oss.ReadUpload(fh, pdfRule)
	if err != nil {
		return err
	}
	url, err := ctl.Svc.UploadDocument(c.UserContext(), userID, id, data, fh.Filename)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Dokumen skripsi berhasil diunggah", dto.DocumentResponse{ThesisDocumentURL: url})
}

// POST /api/admin/thesis-status/run
func (ctl *ThesisController) RunStatusJob(c *fiber.Ctx) error {
	sum, err := ctl.Job.Run(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Klasifikasi rating skripsi selesai", sum)
}
