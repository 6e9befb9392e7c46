// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"skripsiku_backend/internals/helpers/apperr"
)

// Nama locals yang diisi middleware AuthJWT.
const (
	LocRawToken = "raw_token"
	LocUserID   = "user_id"
	LocUserRole = "userRole"
	LocUserName = "user_name"
)

// GetRawAccessToken mengembalikan access token dari:
// 1) Locals("raw_token") yang diset middleware
// 2) Authorization header "Bearer <token>"
// 3) cookie "access_token"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

// GetUserIDFromToken: ambil user_id dari c.Locals("user_id").
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	switch t := c.Locals(LocUserID).(type) {
	case uuid.UUID:
		if t != uuid.Nil {
			return t, nil
		}
	case string:
		s := strings.TrimSpace(t)
		if s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return uuid.Nil, apperr.Unauthorized("User ID pada token tidak valid")
			}
			return id, nil
		}
	}
	return uuid.Nil, apperr.Unauthorized("User belum login")
}

func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocUserRole).(string)
	return strings.TrimSpace(role)
}
