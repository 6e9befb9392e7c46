package controller

import (
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/theses/theses/dto"
	"skripsiku_backend/internals/features/theses/theses/model"
	helper "skripsiku_backend/internals/helpers"
)

// GET /theses/:id/guidances?status=
func (ctl *ThesisController) ListGuidances(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var q dto.ListGuidanceQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, err := ctl.Svc.ListGuidances(c.UserContext(), actor, id, q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar bimbingan", rows, nil)
}

// POST /theses/:id/guidances
func (ctl *ThesisController) RequestGuidance(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.RequestGuidanceRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	g, err := ctl.Svc.RequestGuidance(c.UserContext(), userID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Pengajuan bimbingan terkirim", g)
}

// PATCH /guidances/:id/accept
func (ctl *ThesisController) AcceptGuidance(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AcceptGuidanceRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	g, err := ctl.Svc.AcceptGuidance(c.UserContext(), userID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Bimbingan diterima", g)
}

// PATCH /guidances/:id/reject | /complete | /cancel
func (ctl *ThesisController) GuidanceAction(status string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		id, err := helper.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}
		var req dto.GuidanceNoteRequest
		if len(c.Body()) > 0 {
			if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
				return err
			}
		}

		var g *model.GuidanceModel
		switch status {
		case model.GuidanceRejected:
			g, err = ctl.Svc.RejectGuidance(c.UserContext(), userID, id, req)
		case model.GuidanceCompleted:
			g, err = ctl.Svc.CompleteGuidance(c.UserContext(), userID, id, req)
		default:
			g, err = ctl.Svc.CancelGuidance(c.UserContext(), userID, id, req)
		}
		if err != nil {
			return err
		}
		return helper.JsonUpdated(c, "Status bimbingan: "+g.GuidanceStatus, g)
	}
}
