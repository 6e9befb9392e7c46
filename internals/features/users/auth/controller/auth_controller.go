package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/features/users/auth/dto"
	"skripsiku_backend/internals/features/users/auth/service"
	helper "skripsiku_backend/internals/helpers"
)

type AuthController struct {
	Svc       *service.AuthService
	Validator *validator.Validate
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc, Validator: helper.Validator()}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.BindAndValidate(c, ac.Validator, &req); err != nil {
		return err
	}
	res, err := ac.Svc.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	setAccessCookie(c, res)
	return helper.JsonOK(c, "Login berhasil", res)
}

// POST /api/auth/login-google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.LoginGoogleRequest
	if err := helper.BindAndValidate(c, ac.Validator, &req); err != nil {
		return err
	}
	res, err := ac.Svc.LoginGoogle(c.UserContext(), req)
	if err != nil {
		return err
	}
	setAccessCookie(c, res)
	return helper.JsonOK(c, "Login Google berhasil", res)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Svc.Logout(c.UserContext(), helper.GetRawAccessToken(c)); err != nil {
		return err
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	me, err := ac.Svc.Me(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", me)
}

func setAccessCookie(c *fiber.Ctx, res *dto.LoginResponse) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  res.ExpiresAt,
	})
}
