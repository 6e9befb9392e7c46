package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/constants"
	helper "skripsiku_backend/internals/helpers"
)

func newRoleApp(role string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals(helper.LocUserRole, role)
		}
		return c.Next()
	})
	app.Get("/x", OnlyRolesSlice(constants.RoleErrorManager("rubrik"), constants.ManagerRoles), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestOnlyRoles(t *testing.T) {
	cases := []struct {
		role string
		want int
	}{
		{constants.RoleKadep, fiber.StatusNoContent},
		{constants.RoleAdmin, fiber.StatusNoContent},
		{constants.RoleMahasiswa, fiber.StatusForbidden},
		{"", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		resp, err := newRoleApp(tc.role).Test(httptest.NewRequest("GET", "/x", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, "role=%q", tc.role)
	}
}

func TestValidateTokenExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	ok := jwt.MapClaims{"exp": float64(now.Add(time.Minute).Unix())}
	assert.NoError(t, validateTokenExpiry(ok, now, 0))

	withinSkew := jwt.MapClaims{"exp": float64(now.Add(-10 * time.Second).Unix())}
	assert.NoError(t, validateTokenExpiry(withinSkew, now, 30*time.Second))

	expired := jwt.MapClaims{"exp": float64(now.Add(-time.Hour).Unix())}
	assert.Error(t, validateTokenExpiry(expired, now, 30*time.Second))

	assert.Error(t, validateTokenExpiry(jwt.MapClaims{}, now, 0))
}

func TestExtractBearerToken(t *testing.T) {
	app := fiber.New()
	var got string
	var gotErr error
	app.Get("/ws", func(c *fiber.Ctx) error {
		got, gotErr = extractBearerToken(c, true)
		return nil
	})
	app.Get("/h", func(c *fiber.Ctx) error {
		got, gotErr = extractBearerToken(c, false)
		return nil
	})

	req := httptest.NewRequest("GET", "/h", nil)
	req.Header.Set("Authorization", "Bearer   \"abc.def\"")
	_, err := app.Test(req)
	require.NoError(t, err)
	require.NoError(t, gotErr)
	assert.Equal(t, "abc.def", got)

	_, err = app.Test(httptest.NewRequest("GET", "/ws?token=qwe", nil))
	require.NoError(t, err)
	require.NoError(t, gotErr)
	assert.Equal(t, "qwe", got)

	_, err = app.Test(httptest.NewRequest("GET", "/h?token=qwe", nil))
	require.NoError(t, err)
	assert.Error(t, gotErr)
}
