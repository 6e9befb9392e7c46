package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/features/documents/templates/dto"
	"skripsiku_backend/internals/features/documents/templates/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type memRepo struct {
	mu          sync.Mutex
	templates   map[uuid.UUID]*model.TemplateModel
	generations []model.GenerationModel
	failLog     bool
}

func newMemRepo() *memRepo {
	return &memRepo{templates: map[uuid.UUID]*model.TemplateModel{}}
}

func (r *memRepo) List(ctx context.Context, q dto.ListTemplateQuery) ([]model.TemplateModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TemplateModel
	for _, t := range r.templates {
		if q.Kind != "" && t.TemplateKind != q.Kind {
			continue
		}
		if q.Active != nil && t.TemplateIsActive != *q.Active {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *memRepo) FindByKey(ctx context.Context, key string) (*model.TemplateModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.templates {
		if t.TemplateKey == key {
			cp := *t
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("Template dokumen tidak ditemukan")
}

func (r *memRepo) KeyExists(ctx context.Context, key string) (bool, error) {
	_, err := r.FindByKey(ctx, key)
	return err == nil, nil
}

func (r *memRepo) Create(ctx context.Context, m *model.TemplateModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.TemplateID = uuid.New()
	cp := *m
	r.templates[m.TemplateID] = &cp
	return nil
}

func (r *memRepo) Save(ctx context.Context, m *model.TemplateModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.templates[m.TemplateID] = &cp
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return apperr.NotFound("Template dokumen tidak ditemukan")
	}
	delete(r.templates, id)
	return nil
}

func (r *memRepo) CreateGeneration(ctx context.Context, g *model.GenerationModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failLog {
		return errors.New("db down")
	}
	g.GenerationID = uuid.New()
	r.generations = append(r.generations, *g)
	return nil
}

func (r *memRepo) ListGenerations(ctx context.Context, templateID uuid.UUID, limit, offset int) ([]model.GenerationModel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.GenerationModel
	for _, g := range r.generations {
		if g.GenerationTemplateID == templateID {
			all = append(all, g)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{objects: map[string][]byte{}} }

func (s *memStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return s.PublicURL(key), nil
}

func (s *memStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s tidak ada", key)
	}
	return b, nil
}

func (s *memStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStorage) PublicURL(key string) string { return "https://files.test/" + key }

type fakeConverter struct {
	err  error
	last []byte
}

func (f *fakeConverter) Convert(ctx context.Context, filename string, docx []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.last = docx
	return []byte("%PDF-fake"), nil
}

func newTemplateService(t *testing.T) (*TemplateService, *memRepo, *memStorage, *fakeConverter) {
	t.Helper()
	repo, st, conv := newMemRepo(), newMemStorage(), &fakeConverter{}
	svc := NewTemplateService(repo, st, conv)
	svc.Now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo, st, conv
}

func uploadFixture(t *testing.T, svc *TemplateService) *model.TemplateModel {
	t.Helper()
	m, err := svc.Upload(context.Background(), dto.UploadTemplateRequest{Name: "Surat Tugas Pembimbing"}, fixtureDocx(t), "surat.docx")
	require.NoError(t, err)
	return m
}

func fullData() map[string]any {
	return map[string]any{
		"nama":     "Siti",
		"nim":      2101,
		"judul":    "Analisis",
		"fakultas": "FIK",
	}
}

func TestUploadTemplate(t *testing.T) {
	svc, _, st, _ := newTemplateService(t)

	m := uploadFixture(t, svc)
	assert.Equal(t, "surat-tugas-pembimbing", m.TemplateKey)
	assert.Equal(t, "letter", m.TemplateKind)
	assert.True(t, m.TemplateIsActive)
	assert.Equal(t, []string{"fakultas", "judul", "nama", "nim"}, []string(m.TemplatePlaceholders))
	assert.Contains(t, st.objects, m.TemplateStorageKey)

	_, err := svc.Upload(context.Background(), dto.UploadTemplateRequest{Key: "Surat Tugas Pembimbing", Name: "Lain"}, fixtureDocx(t), "b.docx")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Upload(context.Background(), dto.UploadTemplateRequest{Name: "Rusak"}, []byte("bukan zip"), "x.docx")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGenerateStoresPDFAndLogs(t *testing.T) {
	svc, repo, st, conv := newTemplateService(t)
	tpl := uploadFixture(t, svc)
	user := uuid.New()

	g, err := svc.Generate(context.Background(), tpl.TemplateKey, user, dto.GenerateRequest{Data: fullData()})
	require.NoError(t, err)

	assert.Equal(t, "%PDF-fake", string(st.objects[g.GenerationOutputKey]))
	assert.Contains(t, g.GenerationOutputKey, "documents/generated/surat-tugas-pembimbing/")
	assert.Equal(t, user, g.GenerationRequestedBy)
	assert.Contains(t, readEntry(t, conv.last, "word/document.xml"), "NIM: 2101")

	require.Len(t, repo.generations, 1)
	var saved map[string]any
	require.NoError(t, json.Unmarshal(repo.generations[0].GenerationData, &saved))
	assert.Equal(t, "Siti", saved["nama"])

	rows, page, err := svc.ListGenerations(context.Background(), tpl.TemplateKey, dto.ListGenerationQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.EqualValues(t, 1, page.Total)
}

func TestGenerateMissingData(t *testing.T) {
	svc, repo, _, conv := newTemplateService(t)
	tpl := uploadFixture(t, svc)

	data := fullData()
	delete(data, "judul")
	_, err := svc.Generate(context.Background(), tpl.TemplateKey, uuid.New(), dto.GenerateRequest{Data: data})

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, []string{"kurang: judul"}, ae.Fields["data"])
	assert.Nil(t, conv.last)
	assert.Empty(t, repo.generations)
}

func TestGenerateInactiveTemplate(t *testing.T) {
	svc, _, _, _ := newTemplateService(t)
	tpl := uploadFixture(t, svc)

	toggled, err := svc.Toggle(context.Background(), tpl.TemplateKey)
	require.NoError(t, err)
	assert.False(t, toggled.TemplateIsActive)

	_, err = svc.Generate(context.Background(), tpl.TemplateKey, uuid.New(), dto.GenerateRequest{Data: fullData()})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGenerateConverterFailure(t *testing.T) {
	svc, repo, st, conv := newTemplateService(t)
	tpl := uploadFixture(t, svc)
	conv.err = apperr.Upstream("Konversi PDF gagal (HTTP 500)", errors.New("boom"))

	_, err := svc.Generate(context.Background(), tpl.TemplateKey, uuid.New(), dto.GenerateRequest{Data: fullData()})
	assert.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Len(t, st.objects, 1)
	assert.Empty(t, repo.generations)
}

func TestGenerateLogFailureStillReturnsPDF(t *testing.T) {
	svc, repo, _, _ := newTemplateService(t)
	tpl := uploadFixture(t, svc)
	repo.failLog = true

	g, err := svc.Generate(context.Background(), tpl.TemplateKey, uuid.New(), dto.GenerateRequest{Data: fullData()})
	require.NoError(t, err)
	assert.NotEmpty(t, g.GenerationOutputURL)
}

func TestDeleteTemplateRemovesFile(t *testing.T) {
	svc, _, st, _ := newTemplateService(t)
	tpl := uploadFixture(t, svc)

	require.NoError(t, svc.Delete(context.Background(), tpl.TemplateKey))
	assert.Empty(t, st.objects)

	_, err := svc.Get(context.Background(), tpl.TemplateKey)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
