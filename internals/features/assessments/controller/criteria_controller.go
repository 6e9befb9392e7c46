// file: internals/features/assessments/controller/criteria_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/assessments/dto"
	"skripsiku_backend/internals/features/assessments/service"
	helper "skripsiku_backend/internals/helpers"
)

type AssessmentController struct {
	Svc       *service.AssessmentService
	Validator *validator.Validate
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Svc: svc, Validator: helper.Validator()}
}

// GET /assessments/criteria?applies_to=&role=&cpmk_id=&active=
func (ctl *AssessmentController) ListCriteria(c *fiber.Ctx) error {
	var q dto.ListCriteriaQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, err := ctl.Svc.ListCriteria(c.UserContext(), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar kriteria penilaian", rows, nil)
}

// GET /assessments/criteria/budget?applies_to=&role=
func (ctl *AssessmentController) Budget(c *fiber.Ctx) error {
	var q dto.BudgetQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	res, err := ctl.Svc.Budget(c.UserContext(), q)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Sisa anggaran skor", res)
}

func (ctl *AssessmentController) GetCriteria(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.GetCriteria(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail kriteria penilaian", m)
}

func (ctl *AssessmentController) CreateCriteria(c *fiber.Ctx) error {
	var req dto.CreateCriteriaRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.CreateCriteria(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Kriteria penilaian berhasil dibuat", m)
}

func (ctl *AssessmentController) UpdateCriteria(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCriteriaRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.UpdateCriteria(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Kriteria penilaian berhasil diperbarui", m)
}

func (ctl *AssessmentController) ToggleCriteria(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.ToggleCriteria(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Status kriteria diperbarui", m)
}

func (ctl *AssessmentController) DeleteCriteria(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.DeleteCriteria(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Kriteria penilaian berhasil dihapus", fiber.Map{"criteria_id": id})
}

// PUT /assessments/criteria/reorder
func (ctl *AssessmentController) ReorderCriteria(c *fiber.Ctx) error {
	var req dto.ReorderCriteriaRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	rows, err := ctl.Svc.ReorderCriteria(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Urutan kriteria diperbarui", rows)
}
