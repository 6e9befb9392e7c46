package controller

import (
	"bytes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/constants"
	authDto "skripsiku_backend/internals/features/users/auth/dto"
	"skripsiku_backend/internals/features/users/user/dto"
	"skripsiku_backend/internals/features/users/user/service"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/oss"
)

type UserController struct {
	Svc       *service.UserService
	Validator *validator.Validate
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Svc: svc, Validator: helper.Validator()}
}

var (
	avatarRule = oss.UploadRule{MaxBytes: constants.MaxAvatarBytes, Exts: constants.ImageExts, MIMEs: constants.ImageMIMEs}
	csvRule    = oss.UploadRule{MaxBytes: constants.MaxCSVBytes, Exts: constants.CSVExts, MIMEs: constants.CSVMIMEs}
)

// GET /api/admin/users
func (uc *UserController) List(c *fiber.Ctx) error {
	var q dto.ListUserQuery
	if err := helper.BindQuery(c, uc.Validator, &q); err != nil {
		return err
	}
	rows, pg, err := uc.Svc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	out := make([]authDto.UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, authDto.FromUserModel(&rows[i]))
	}
	return helper.JsonList(c, "Daftar user", out, &pg)
}

// POST /api/u/me/avatar (multipart field "file")
func (uc *UserController) UploadAvatar(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	fh, _ := c.FormFile("file")
	data, _, err := oss.ReadUpload(fh, avatarRule)
	if err != nil {
		return err
	}
	url, err := uc.Svc.UploadAvatar(c.UserContext(), userID, data, fh.Filename)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Avatar berhasil diperbarui", dto.AvatarResponse{AvatarURL: url})
}

// POST /api/admin/students/import (multipart field "file")
func (uc *UserController) ImportStudents(c *fiber.Ctx) error {
	fh, _ := c.FormFile("file")
	data, _, err := oss.ReadUpload(fh, csvRule)
	if err != nil {
		return err
	}
	res, err := uc.Svc.ImportStudents(c.UserContext(), bytes.NewReader(data))
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Import mahasiswa selesai", res)
}
