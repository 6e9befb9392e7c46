package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/helpers/apperr"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "surat-tugas-pembimbing", Slugify("  Surat Tugas  Pembimbing ", 0))
	assert.Equal(t, "berita-acara-sidang", Slugify("Berita Acara: Sidang!", 0))
	assert.Equal(t, "cafe", Slugify("Café", 0))
	assert.Equal(t, "item", Slugify("***", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 3))

	assert.Equal(t, "", SlugifyPart("***", 0))
	assert.Equal(t, "skripsi-ekonomi", SlugifyPart("Skripsi Ékonomi", 0))
}

func TestCheckReorderIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	all := []uuid.UUID{a, b, c}

	assert.NoError(t, CheckReorderIDs([]uuid.UUID{c, a, b}, all))

	for name, ids := range map[string][]uuid.UUID{
		"kosong":       nil,
		"duplikat":     {a, a, b},
		"di luar list": {a, b, uuid.New()},
		"sebagian":     {c},
		"kurang satu":  {b, a},
	} {
		err := CheckReorderIDs(ids, all)
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "CPMK 01", NormalizeCode("  cpmk   01 "))
	assert.Equal(t, "Metode X", NormalizeName("  Metode   X "))
}

func TestNormalizePaging(t *testing.T) {
	p := NormalizePaging(0, 0, 20, 100)
	assert.Equal(t, Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}, p)

	p = NormalizePaging(3, 500, 20, 100)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 200, p.Offset)
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
}

func TestErrorHandlerMapsDomainErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return apperr.Conflict("Kode CPMK sudah dipakai")
	})
	app.Get("/fields", func(c *fiber.Ctx) error {
		return apperr.ValidationFields("Validasi gagal", map[string][]string{"code": {"required"}})
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTooManyRequests, "pelan-pelan")
	})

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/conflict", 409, "CONFLICT"},
		{"/fields", 400, "VALIDATION_ERROR"},
		{"/fiber", 429, "TOO_MANY_REQUESTS"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		raw, _ := io.ReadAll(resp.Body)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.ErrorCode)
	}
}

type createPayload struct {
	Code     string `json:"code" validate:"required,max=20"`
	MaxScore int    `json:"max_score" validate:"required,gt=0"`
}

func TestBindAndValidateReportsFields(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/", func(c *fiber.Ctx) error {
		var p createPayload
		if err := BindAndValidate(c, nil, &p); err != nil {
			return err
		}
		return JsonCreated(c, "", p)
	})

	req := httptest.NewRequest("POST", "/", jsonBody(`{"code":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body.Errors, "code")
	assert.Contains(t, body.Errors, "maxscore")

	req = httptest.NewRequest("POST", "/", jsonBody(`{"code":"C1","max_score":10}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }
