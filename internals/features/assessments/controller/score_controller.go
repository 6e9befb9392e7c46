package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"skripsiku_backend/internals/features/assessments/dto"
	helper "skripsiku_backend/internals/helpers"
)

// POST /assessments/scores (dosen)
func (ctl *AssessmentController) SubmitScore(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.SubmitScoreRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.SubmitScore(c.UserContext(), userID, req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Nilai tersimpan", m)
}

// GET /assessments/scores?thesis_id=&applies_to=
func (ctl *AssessmentController) ThesisScores(c *fiber.Ctx) error {
	var q dto.ListScoreQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	res, err := ctl.Svc.ThesisScores(c.UserContext(), uuid.MustParse(q.ThesisID), q.AppliesTo)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Nilai skripsi", res)
}
