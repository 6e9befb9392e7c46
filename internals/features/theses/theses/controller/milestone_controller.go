package controller

import (
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/theses/theses/dto"
	helper "skripsiku_backend/internals/helpers"
)

// GET /theses/:id/milestones
func (ctl *ThesisController) ListMilestones(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.ListMilestones(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar milestone", rows, nil)
}

// POST /theses/:id/milestones
func (ctl *ThesisController) CreateMilestone(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateMilestoneRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.CreateMilestone(c.UserContext(), userID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Milestone berhasil dibuat", m)
}

// PATCH /milestones/:id
func (ctl *ThesisController) UpdateMilestone(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateMilestoneRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.UpdateMilestone(c.UserContext(), userID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Milestone diperbarui", m)
}
