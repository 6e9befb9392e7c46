package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/yudisium/requirements/dto"
	"skripsiku_backend/internals/features/yudisium/requirements/service"
	helper "skripsiku_backend/internals/helpers"
)

type RequirementController struct {
	Svc       *service.RequirementService
	Validator *validator.Validate
}

func NewRequirementController(svc *service.RequirementService) *RequirementController {
	return &RequirementController{Svc: svc, Validator: helper.Validator()}
}

// GET /yudisium-requirements?active=
func (ctl *RequirementController) List(c *fiber.Ctx) error {
	var q dto.ListRequirementQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, err := ctl.Svc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar syarat yudisium", rows, nil)
}

func (ctl *RequirementController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail syarat yudisium", m)
}

func (ctl *RequirementController) Create(c *fiber.Ctx) error {
	var req dto.CreateRequirementRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Syarat yudisium berhasil dibuat", m)
}

func (ctl *RequirementController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateRequirementRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Syarat yudisium diperbarui", m)
}

func (ctl *RequirementController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Toggle(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Status syarat yudisium diubah", m)
}

func (ctl *RequirementController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Syarat yudisium dihapus", fiber.Map{"requirement_id": id})
}

// PUT /yudisium-requirements/reorder {"ids":[...]}
func (ctl *RequirementController) Reorder(c *fiber.Ctx) error {
	var req dto.ReorderRequirementRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	rows, err := ctl.Svc.Reorder(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Urutan syarat yudisium diperbarui", rows)
}
