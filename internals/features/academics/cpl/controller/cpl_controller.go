// file: internals/features/academics/cpl/controller/cpl_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/academics/cpl/dto"
	"skripsiku_backend/internals/features/academics/cpl/service"
	helper "skripsiku_backend/internals/helpers"
)

type CplController struct {
	Svc       *service.CplService
	Validator *validator.Validate
}

func NewCplController(svc *service.CplService) *CplController {
	return &CplController{Svc: svc, Validator: helper.Validator()}
}

// GET /cpl?q=&active=&page=&per_page=
func (ctl *CplController) List(c *fiber.Ctx) error {
	var q dto.ListCplQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, pg, err := ctl.Svc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar CPL", rows, &pg)
}

// GET /cpl/:id
func (ctl *CplController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail CPL", m)
}

// POST /cpl
func (ctl *CplController) Create(c *fiber.Ctx) error {
	var req dto.CreateCplRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "CPL berhasil dibuat", m)
}

// PATCH /cpl/:id
func (ctl *CplController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCplRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "CPL berhasil diperbarui", m)
}

// PATCH /cpl/:id/toggle
func (ctl *CplController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Toggle(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Status CPL diperbarui", m)
}

// DELETE /cpl/:id
func (ctl *CplController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "CPL berhasil dihapus", fiber.Map{"cpl_id": id})
}
