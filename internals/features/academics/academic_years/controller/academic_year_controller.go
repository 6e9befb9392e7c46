// file: internals/features/academics/academic_years/controller/academic_year_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/academics/academic_years/dto"
	"skripsiku_backend/internals/features/academics/academic_years/service"
	helper "skripsiku_backend/internals/helpers"
)

type AcademicYearController struct {
	Svc       *service.AcademicYearService
	Validator *validator.Validate
}

func NewAcademicYearController(svc *service.AcademicYearService) *AcademicYearController {
	return &AcademicYearController{Svc: svc, Validator: helper.Validator()}
}

// GET /academic-years?year=&semester=&active=
func (ctl *AcademicYearController) List(c *fiber.Ctx) error {
	var q dto.ListAcademicYearQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, pg, err := ctl.Svc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar tahun akademik", rows, &pg)
}

// GET /academic-years/active
func (ctl *AcademicYearController) Active(c *fiber.Ctx) error {
	m, err := ctl.Svc.Active(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Tahun akademik aktif", m)
}

func (ctl *AcademicYearController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail tahun akademik", m)
}

func (ctl *AcademicYearController) Create(c *fiber.Ctx) error {
	var req dto.CreateAcademicYearRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Tahun akademik berhasil dibuat", m)
}

func (ctl *AcademicYearController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAcademicYearRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Tahun akademik berhasil diperbarui", m)
}

// PATCH /academic-years/:id/activate
func (ctl *AcademicYearController) Activate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Activate(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Tahun akademik "+m.Label()+" diaktifkan", m)
}

func (ctl *AcademicYearController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Tahun akademik berhasil dihapus", fiber.Map{"academic_year_id": id})
}
