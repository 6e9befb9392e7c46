// file: internals/features/documents/templates/service/template_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"skripsiku_backend/internals/features/documents/templates/dto"
	"skripsiku_backend/internals/features/documents/templates/model"
	"skripsiku_backend/internals/features/documents/templates/repository"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
	"skripsiku_backend/internals/helpers/oss"
)

type TemplateService struct {
	Repo      repository.Repository
	Storage   oss.Storage
	Converter PDFConverter
	Now       func() time.Time
}

func NewTemplateService(repo repository.Repository, st oss.Storage, conv PDFConverter) *TemplateService {
	return &TemplateService{Repo: repo, Storage: st, Converter: conv, Now: time.Now}
}

func (s *TemplateService) List(ctx context.Context, q dto.ListTemplateQuery) ([]model.TemplateModel, error) {
	return s.Repo.List(ctx, q)
}

func (s *TemplateService) Get(ctx context.Context, key string) (*model.TemplateModel, error) {
	return s.Repo.FindByKey(ctx, strings.TrimSpace(key))
}

// Upload menyimpan template baru. Key diturunkan dari nama bila kosong.
func (s *TemplateService) Upload(ctx context.Context, req dto.UploadTemplateRequest, data []byte, filename string) (*model.TemplateModel, error) {
	req.Normalize()
	if !IsDocx(data) {
		return nil, apperr.Validation("File bukan dokumen .docx yang valid")
	}
	key := req.Key
	if key == "" {
		key = req.Name
	}
	key = helper.Slugify(key, 100)

	exists, err := s.Repo.KeyExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflictf("Template dengan key %q sudah ada", key)
	}

	placeholders, err := Placeholders(data)
	if err != nil {
		return nil, apperr.Validation("Template tidak bisa dibaca: " + err.Error())
	}

	storageKey := oss.BuildKey("documents/templates", key, ".docx")
	url, err := s.Storage.Put(ctx, storageKey, data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	if err != nil {
		return nil, apperr.Upstream("Gagal menyimpan template", err)
	}

	m := &model.TemplateModel{
		TemplateKey:          key,
		TemplateName:         req.Name,
		TemplateKind:         req.Kind,
		TemplateStorageKey:   storageKey,
		TemplateFileURL:      url,
		TemplatePlaceholders: placeholders,
		TemplateIsActive:     true,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		_ = s.Storage.Delete(ctx, storageKey)
		return nil, err
	}
	log.Printf("[INFO] template %s diunggah (%d placeholder) dari %s", key, len(placeholders), filename)
	return m, nil
}

func (s *TemplateService) Toggle(ctx context.Context, key string) (*model.TemplateModel, error) {
	m, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	m.TemplateIsActive = !m.TemplateIsActive
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *TemplateService) Delete(ctx context.Context, key string) error {
	m, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, m.TemplateID); err != nil {
		return err
	}
	if err := s.Storage.Delete(ctx, m.TemplateStorageKey); err != nil {
		log.Printf("[WARN] gagal hapus file template %s: %v", m.TemplateStorageKey, err)
	}
	return nil
}

// Generate: isi placeholder → konversi PDF → simpan → catat log.
func (s *TemplateService) Generate(ctx context.Context, key string, requestedBy uuid.UUID, req dto.GenerateRequest) (*model.GenerationModel, error) {
	t, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !t.TemplateIsActive {
		return nil, apperr.Validation("Template sedang nonaktif")
	}

	src, err := s.Storage.Get(ctx, t.TemplateStorageKey)
	if err != nil {
		return nil, apperr.Upstream("Gagal mengambil file template", err)
	}

	values := StringifyValues(req.Data)
	filled, missing, err := FillDocx(src, values)
	if err != nil {
		return nil, apperr.Internal("Gagal mengisi template", err)
	}
	if len(missing) > 0 {
		return nil, apperr.ValidationFields("Data placeholder belum lengkap", map[string][]string{
			"data": {"kurang: " + strings.Join(missing, ", ")},
		})
	}

	pdf, err := s.Converter.Convert(ctx, t.TemplateKey+".docx", filled)
	if err != nil {
		return nil, err
	}

	outKey := oss.BuildKey("documents/generated/"+t.TemplateKey, t.TemplateKey+"-"+s.Now().Format("20060102-150405"), ".pdf")
	url, err := s.Storage.Put(ctx, outKey, pdf, "application/pdf")
	if err != nil {
		return nil, apperr.Upstream("Gagal menyimpan PDF", err)
	}

	raw, _ := json.Marshal(req.Data)
	g := &model.GenerationModel{
		GenerationTemplateID:  t.TemplateID,
		GenerationRequestedBy: requestedBy,
		GenerationData:        datatypes.JSON(raw),
		GenerationOutputKey:   outKey,
		GenerationOutputURL:   url,
	}
	if err := s.Repo.CreateGeneration(ctx, g); err != nil {
		// PDF sudah tersimpan; log gagal tidak menggagalkan respons
		log.Printf("[ERROR] gagal catat generate %s: %v", t.TemplateKey, err)
	}
	return g, nil
}

func (s *TemplateService) ListGenerations(ctx context.Context, key string, q dto.ListGenerationQuery) ([]model.GenerationModel, helper.Pagination, error) {
	t, err := s.Get(ctx, key)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	p := helper.NormalizePaging(q.Page, q.PerPage, 20, 100)
	rows, total, err := s.Repo.ListGenerations(ctx, t.TemplateID, p.Limit, p.Offset)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	return rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

// StringifyValues: nil → "", angka/bool apa adanya, tipe lain via JSON.
func StringifyValues(data map[string]any) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		k = strings.TrimSpace(k)
		switch x := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = x
		case float64, int, int64, bool:
			out[k] = fmt.Sprint(x)
		default:
			b, err := json.Marshal(x)
			if err != nil {
				out[k] = fmt.Sprint(x)
				continue
			}
			out[k] = string(b)
		}
	}
	return out
}
