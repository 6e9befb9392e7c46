// file: internals/features/theses/topics/controller/topic_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/theses/topics/dto"
	"skripsiku_backend/internals/features/theses/topics/service"
	helper "skripsiku_backend/internals/helpers"
)

type TopicController struct {
	Svc       *service.TopicService
	Validator *validator.Validate
}

func NewTopicController(svc *service.TopicService) *TopicController {
	return &TopicController{Svc: svc, Validator: helper.Validator()}
}

// GET /topics?q=&active=&page=&per_page=
func (ctl *TopicController) List(c *fiber.Ctx) error {
	var q dto.ListTopicQuery
	if err := helper.BindQuery(c, ctl.Validator, &q); err != nil {
		return err
	}
	rows, pg, err := ctl.Svc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar topik skripsi", rows, &pg)
}

// GET /topics/:id
func (ctl *TopicController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail topik", m)
}

// POST /topics
func (ctl *TopicController) Create(c *fiber.Ctx) error {
	var req dto.CreateTopicRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Topik berhasil dibuat", m)
}

// PATCH /topics/:id
func (ctl *TopicController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTopicRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Topik berhasil diperbarui", m)
}

// PATCH /topics/:id/toggle
func (ctl *TopicController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Toggle(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Status topik diperbarui", m)
}

// DELETE /topics/:id
func (ctl *TopicController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Topik berhasil dihapus", fiber.Map{"topic_id": id})
}
