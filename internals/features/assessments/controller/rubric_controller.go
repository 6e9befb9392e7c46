package controller

import (
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/assessments/dto"
	helper "skripsiku_backend/internals/helpers"
)

// GET /assessments/criteria/:id/rubrics
func (ctl *AssessmentController) ListRubrics(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.ListRubrics(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar rubrik", rows, nil)
}

// POST /assessments/criteria/:id/rubrics
func (ctl *AssessmentController) CreateRubric(c *fiber.Ctx) error {
	criteriaID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateRubricRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.CreateRubric(c.UserContext(), criteriaID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Rubrik berhasil dibuat", m)
}

// PUT /assessments/criteria/:id/rubrics/reorder
func (ctl *AssessmentController) ReorderRubrics(c *fiber.Ctx) error {
	criteriaID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReorderRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	rows, err := ctl.Svc.ReorderRubrics(c.UserContext(), criteriaID, req.IDs)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Urutan rubrik diperbarui", rows)
}

// PATCH /assessments/rubrics/:id
func (ctl *AssessmentController) UpdateRubric(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateRubricRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.UpdateRubric(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Rubrik berhasil diperbarui", m)
}

// DELETE /assessments/rubrics/:id
func (ctl *AssessmentController) DeleteRubric(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.DeleteRubric(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Rubrik berhasil dihapus", fiber.Map{"rubric_id": id})
}
