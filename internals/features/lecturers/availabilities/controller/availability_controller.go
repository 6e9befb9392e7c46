// file: internals/features/lecturers/availabilities/controller/availability_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/lecturers/availabilities/dto"
	"skripsiku_backend/internals/features/lecturers/availabilities/service"
	helper "skripsiku_backend/internals/helpers"
)

type AvailabilityController struct {
	Svc       *service.AvailabilityService
	Validator *validator.Validate
}

func NewAvailabilityController(svc *service.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Svc: svc, Validator: helper.Validator()}
}

// GET /lecturer/availabilities?day=&active=
func (ctl *AvailabilityController) ListMine(c *fiber.Ctx) error {
	lecturerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var q dto.ListAvailabilityQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, err := ctl.Svc.ListMine(c.UserContext(), lecturerID, q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Jadwal saya", rows, nil)
}

// GET /lecturers/:lecturer_id/availabilities?day=
func (ctl *AvailabilityController) ListPublic(c *fiber.Ctx) error {
	lecturerID, err := helper.ParseUUIDParam(c, "lecturer_id")
	if err != nil {
		return err
	}
	var q dto.ListAvailabilityQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, err := ctl.Svc.ListPublic(c.UserContext(), lecturerID, q.Day)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Jadwal dosen", rows, nil)
}

func (ctl *AvailabilityController) Create(c *fiber.Ctx) error {
	lecturerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateAvailabilityRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Create(c.UserContext(), lecturerID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Jadwal berhasil ditambahkan", m)
}

func (ctl *AvailabilityController) Update(c *fiber.Ctx) error {
	lecturerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAvailabilityRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), lecturerID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Jadwal berhasil diperbarui", m)
}

func (ctl *AvailabilityController) Toggle(c *fiber.Ctx) error {
	lecturerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Toggle(c.UserContext(), lecturerID, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Status jadwal diperbarui", m)
}

func (ctl *AvailabilityController) Delete(c *fiber.Ctx) error {
	lecturerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), lecturerID, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Jadwal berhasil dihapus", fiber.Map{"availability_id": id})
}
