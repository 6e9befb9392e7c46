// file: internals/features/academics/cpmk/controller/cpmk_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/academics/cpmk/dto"
	"skripsiku_backend/internals/features/academics/cpmk/service"
	helper "skripsiku_backend/internals/helpers"
)

type CpmkController struct {
	Svc       *service.CpmkService
	Validator *validator.Validate
}

func NewCpmkController(svc *service.CpmkService) *CpmkController {
	return &CpmkController{Svc: svc, Validator: helper.Validator()}
}

// GET /cpmk?q=&type=&active=&page=&per_page=
func (ctl *CpmkController) List(c *fiber.Ctx) error {
	var q dto.ListCpmkQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, pg, err := ctl.Svc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar CPMK", rows, &pg)
}

// GET /cpmk/:id
func (ctl *CpmkController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail CPMK", m)
}

// POST /cpmk
func (ctl *CpmkController) Create(c *fiber.Ctx) error {
	var req dto.CreateCpmkRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "CPMK berhasil dibuat", m)
}

// PATCH /cpmk/:id
func (ctl *CpmkController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCpmkRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "CPMK berhasil diperbarui", m)
}

// PATCH /cpmk/:id/toggle
func (ctl *CpmkController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Toggle(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Status CPMK diperbarui", m)
}

// DELETE /cpmk/:id
func (ctl *CpmkController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "CPMK berhasil dihapus", fiber.Map{"cpmk_id": id})
}
