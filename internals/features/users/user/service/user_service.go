package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skripsiku_backend/internals/constants"
	"skripsiku_backend/internals/features/users/user/dto"
	"skripsiku_backend/internals/features/users/user/model"
	"skripsiku_backend/internals/features/users/user/repository"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
	"skripsiku_backend/internals/helpers/oss"
)

type UserService struct {
	Repo       repository.Repository
	Storage    oss.Storage
	Validator  *validator.Validate
	BcryptCost int
}

func NewUserService(repo repository.Repository, st oss.Storage) *UserService {
	return &UserService{Repo: repo, Storage: st, Validator: helper.Validator(), BcryptCost: bcrypt.DefaultCost}
}

func (s *UserService) List(ctx context.Context, q dto.ListUserQuery) ([]model.UserModel, helper.Pagination, error) {
	p := helper.NormalizePaging(q.Page, q.PerPage, 20, 100)
	rows, total, err := s.Repo.List(ctx, q, p.Limit, p.Offset)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	return rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

/* ==========================
   Avatar (re-encode ke WebP)
========================== */

func (s *UserService) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, filename string) (string, error) {
	user, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	webpBytes, err := oss.ConvertToWebP(data, filename, oss.AvatarWebPOptions())
	if err != nil {
		return "", apperr.Validation("Gambar tidak bisa diproses: " + err.Error())
	}

	key := oss.BuildKey("users/avatars", user.UserName, ".webp")
	url, err := s.Storage.Put(ctx, key, webpBytes, "image/webp")
	if err != nil {
		return "", apperr.Upstream("Gagal menyimpan avatar", err)
	}
	if err := s.Repo.UpdateAvatar(ctx, userID, url, key); err != nil {
		_ = s.Storage.Delete(ctx, key)
		return "", err
	}

	// avatar lama dibuang setelah yang baru tersimpan
	if user.AvatarKey != nil && *user.AvatarKey != "" && *user.AvatarKey != key {
		if err := s.Storage.Delete(ctx, *user.AvatarKey); err != nil {
			log.Printf("[WARN] gagal hapus avatar lama %s: %v", *user.AvatarKey, err)
		}
	}
	return url, nil
}

/* ==========================
   Import mahasiswa dari CSV
========================== */

var requiredImportHeader = []string{"nim", "name", "email"}

// ParseStudentCSV membaca CSV ber-header nim,name,email (urutan kolom bebas).
func ParseStudentCSV(r io.Reader) ([]dto.StudentRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.Validation("File CSV kosong")
	}
	if err != nil {
		return nil, apperr.Validation("Format CSV tidak valid: " + err.Error())
	}

	idx := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		idx[h] = i
	}
	for _, col := range requiredImportHeader {
		if _, ok := idx[col]; !ok {
			return nil, apperr.Validationf("Kolom %q wajib ada di header CSV", col)
		}
	}

	col := func(rec []string, name string) string {
		i := idx[name]
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var rows []dto.StudentRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.Validation("Format CSV tidak valid: " + err.Error())
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, dto.StudentRow{
			Line:  line,
			NIM:   col(rec, "nim"),
			Name:  helper.NormalizeName(col(rec, "name")),
			Email: strings.ToLower(col(rec, "email")),
		})
	}
	return rows, nil
}

// ImportStudents membuat akun mahasiswa yang belum ada; password awal = bcrypt(NIM).
func (s *UserService) ImportStudents(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, err := ParseStudentCSV(r)
	if err != nil {
		return nil, err
	}

	res := &dto.ImportResult{CreatedIDs: []uuid.UUID{}, Errors: []dto.ImportRowError{}}
	seen := map[string]bool{}
	for _, row := range rows {
		if err := s.Validator.Struct(row); err != nil {
			res.Errors = append(res.Errors, dto.ImportRowError{Line: row.Line, NIM: row.NIM, Message: describeRowError(err)})
			continue
		}
		if seen[row.NIM] || seen[row.Email] {
			res.Skipped++
			continue
		}
		seen[row.NIM], seen[row.Email] = true, true

		exists, err := s.Repo.ExistsByUserNameOrEmail(ctx, row.NIM, row.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			res.Skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(row.NIM), s.BcryptCost)
		if err != nil {
			return nil, apperr.Internal("Gagal hash password", err)
		}
		u := &model.UserModel{
			Name:     row.Name,
			UserName: row.NIM,
			Email:    row.Email,
			Password: string(hash),
			Role:     constants.RoleMahasiswa,
			IsActive: true,
		}
		if err := s.Repo.Create(ctx, u); err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				res.Skipped++
				continue
			}
			res.Errors = append(res.Errors, dto.ImportRowError{Line: row.Line, NIM: row.NIM, Message: err.Error()})
			continue
		}
		res.Created++
		res.CreatedIDs = append(res.CreatedIDs, u.ID)
	}
	log.Printf("[IMPORT] mahasiswa: created=%d skipped=%d errors=%d", res.Created, res.Skipped, len(res.Errors))
	return res, nil
}

func describeRowError(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s tidak valid (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
