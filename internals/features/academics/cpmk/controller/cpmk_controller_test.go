package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/features/academics/cpmk/dto"
	"skripsiku_backend/internals/features/academics/cpmk/model"
	"skripsiku_backend/internals/features/academics/cpmk/service"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
)

type memRepo struct {
	rows     map[uuid.UUID]*model.CpmkModel
	cpls     map[uuid.UUID]bool
	criteria map[uuid.UUID]int64
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uuid.UUID]*model.CpmkModel{}, cpls: map[uuid.UUID]bool{}, criteria: map[uuid.UUID]int64{}}
}

func (m *memRepo) List(_ context.Context, q dto.ListCpmkQuery, _, _ int) ([]model.CpmkModel, int64, error) {
	var out []model.CpmkModel
	for _, r := range m.rows {
		if q.Type != "" && r.CpmkType != q.Type {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CpmkModel, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("CPMK tidak ditemukan")
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) CodeExists(_ context.Context, code string, exclude uuid.UUID) (bool, error) {
	for id, r := range m.rows {
		if id != exclude && strings.EqualFold(r.CpmkCode, code) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) CplExists(_ context.Context, id uuid.UUID) (bool, error) { return m.cpls[id], nil }

func (m *memRepo) Create(_ context.Context, r *model.CpmkModel) error {
	r.CpmkID = uuid.New()
	cp := *r
	m.rows[r.CpmkID] = &cp
	return nil
}

func (m *memRepo) Save(_ context.Context, r *model.CpmkModel) error {
	cp := *r
	m.rows[r.CpmkID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	return nil
}

func (m *memRepo) CountCriteriaRefs(_ context.Context, id uuid.UUID) (int64, error) {
	return m.criteria[id], nil
}

func newApp(repo *memRepo) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	ctl := NewCpmkController(service.NewCpmkService(repo))
	app.Get("/cpmk", ctl.List)
	app.Post("/cpmk", ctl.Create)
	app.Patch("/cpmk/:id/toggle", ctl.Toggle)
	app.Delete("/cpmk/:id", ctl.Delete)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCpmkCreateValidatesTypeAndCode(t *testing.T) {
	repo := newMemRepo()
	app := newApp(repo)

	status, body := do(t, app, "POST", "/cpmk", `{"cpmk_code":"cpmk 1","cpmk_description":"Metode","cpmk_type":"lainnya"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])

	status, body = do(t, app, "POST", "/cpmk", `{"cpmk_code":"cpmk 1","cpmk_description":"Metode penelitian","cpmk_type":"research_method"}`)
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "CPMK 1", data["cpmk_code"])

	status, _ = do(t, app, "POST", "/cpmk", `{"cpmk_code":"CPMK 1","cpmk_description":"Dobel","cpmk_type":"thesis"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	missingCpl := uuid.New()
	status, _ = do(t, app, "POST", "/cpmk", `{"cpmk_code":"CPMK 2","cpmk_description":"Skripsi","cpmk_type":"thesis","cpmk_cpl_id":"`+missingCpl.String()+`"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCpmkDeleteBlockedByCriteria(t *testing.T) {
	repo := newMemRepo()
	app := newApp(repo)

	_, body := do(t, app, "POST", "/cpmk", `{"cpmk_code":"CPMK 3","cpmk_description":"Skripsi","cpmk_type":"thesis"}`)
	id := body["data"].(map[string]any)["cpmk_id"].(string)
	uid := uuid.MustParse(id)

	repo.criteria[uid] = 1
	status, body := do(t, app, "DELETE", "/cpmk/"+id, "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["error_code"])

	repo.criteria[uid] = 0
	status, _ = do(t, app, "DELETE", "/cpmk/"+id, "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, "DELETE", "/cpmk/"+id, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, app, "DELETE", "/cpmk/bukan-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCpmkListFiltersByType(t *testing.T) {
	repo := newMemRepo()
	app := newApp(repo)
	do(t, app, "POST", "/cpmk", `{"cpmk_code":"A1","cpmk_description":"Metode","cpmk_type":"research_method"}`)
	do(t, app, "POST", "/cpmk", `{"cpmk_code":"B1","cpmk_description":"Skripsi","cpmk_type":"thesis"}`)

	status, body := do(t, app, "GET", "/cpmk?type=thesis", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"].([]any), 1)

	status, _ = do(t, app, "GET", "/cpmk?type=salah", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
