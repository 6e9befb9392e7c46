package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/constants"
	"skripsiku_backend/internals/features/documents/templates/dto"
	"skripsiku_backend/internals/features/documents/templates/service"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
	"skripsiku_backend/internals/helpers/oss"
)

var docxRule = oss.UploadRule{
	MaxBytes: constants.MaxTemplateBytes,
	Exts:     constants.DOCXExts,
	MIMEs:    constants.DOCXMIMEs,
}

type TemplateController struct {
	Svc       *service.TemplateService
	Validator *validator.Validate
}

func NewTemplateController(svc *service.TemplateService) *TemplateController {
	return &TemplateController{Svc: svc, Validator: helper.Validator()}
}

// GET /documents/templates?kind=&active=
func (ctl *TemplateController) List(c *fiber.Ctx) error {
	var q dto.ListTemplateQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, err := ctl.Svc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar template dokumen", rows, nil)
}

func (ctl *TemplateController) Get(c *fiber.Ctx) error {
	m, err := ctl.Svc.Get(c.UserContext(), c.Params("key"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail template", m)
}

// POST /documents/templates (multipart: file, name, key?, kind?)
func (ctl *TemplateController) Upload(c *fiber.Ctx) error {
	var req dto.UploadTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Form tidak valid")
	}
	req.Normalize()
	if err := helper.ValidateStruct(ctl.Validator, &req); err != nil {
		return err
	}
	fh, _ := c.FormFile("file")
	data, _, err := oss.ReadUpload(fh, docxRule)
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Upload(c.UserContext(), req, data, fh.Filename)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Template berhasil diunggah", m)
}

func (ctl *TemplateController) Toggle(c *fiber.Ctx) error {
	m, err := ctl.Svc.Toggle(c.UserContext(), c.Params("key"))
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Status template diubah", m)
}

func (ctl *TemplateController) Delete(c *fiber.Ctx) error {
	key := c.Params("key")
	if err := ctl.Svc.Delete(c.UserContext(), key); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Template dihapus", fiber.Map{"template_key": key})
}

// POST /documents/templates/:key/generate {"data":{...}}
func (ctl *TemplateController) Generate(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.GenerateRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	g, err := ctl.Svc.Generate(c.UserContext(), c.Params("key"), userID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Dokumen PDF berhasil dibuat", g)
}

// GET /documents/templates/:key/generations
func (ctl *TemplateController) Generations(c *fiber.Ctx) error {
	var q dto.ListGenerationQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, pg, err := ctl.Svc.ListGenerations(c.UserContext(), c.Params("key"), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Riwayat dokumen", rows, &pg)
}
