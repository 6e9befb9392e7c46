// file: internals/helpers/oss/storage.go
package oss

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
)

// Storage adalah penyimpanan objek (OSS atau disk lokal).
type Storage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// NewStorageFromEnv memilih OSS kalau ENV ALI_OSS_* lengkap, selain itu disk lokal.
func NewStorageFromEnv() Storage {
	if s, err := NewOSSStorageFromEnv(getEnv("ALI_OSS_PREFIX")); err == nil {
		return s
	} else {
		log.Printf("[STORAGE] OSS tidak aktif (%v), pakai disk lokal", err)
	}
	dir := getEnv("STORAGE_LOCAL_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	base := getEnv("STORAGE_PUBLIC_BASE")
	if base == "" {
		base = "/uploads"
	}
	return NewLocalStorage(dir, base)
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   Key builder
======================================================================= */

// BuildKey: <dir>/<yyyy>/<mm>/<slug-nama>_<rand><ext>
func BuildKey(dir, filename, ext string) string {
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	now := time.Now()
	return path.Join(
		safePart(dir),
		now.Format("2006"),
		now.Format("01"),
		fmt.Sprintf("%s_%s%s", slugPart(base), randHex(4), ext),
	)
}

func slugPart(s string) string {
	if s = helper.SlugifyPart(s, 60); s == "" {
		return "file"
	}
	return s
}

// safePart: segmen yang kosong setelah di-slug dibuang; tanpa segmen tersisa jadi "misc".
func safePart(s string) string {
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = helper.SlugifyPart(p, 60); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "misc"
	}
	return strings.Join(out, "/")
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

/* =======================================================================
   Upload guard (ekstensi + MIME sniff + ukuran)
======================================================================= */

type UploadRule struct {
	MaxBytes int64
	Exts     []string // ".pdf", ".docx", ...
	MIMEs    []string // prefix hasil http.DetectContentType
}

// ReadUpload membaca file multipart setelah lolos filter ekstensi, ukuran, dan MIME.
func ReadUpload(fh *multipart.FileHeader, rule UploadRule) ([]byte, string, error) {
	if fh == nil {
		return nil, "", apperr.Validation("File wajib diunggah")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if len(rule.Exts) > 0 && !contains(rule.Exts, ext) {
		return nil, "", apperr.Validationf("Ekstensi %q tidak diizinkan (harus %s)", ext, strings.Join(rule.Exts, ", "))
	}
	if rule.MaxBytes > 0 && fh.Size > rule.MaxBytes {
		return nil, "", apperr.Validationf("Ukuran file maksimal %d KB", rule.MaxBytes/1024)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "", apperr.Validation("File tidak bisa dibaca")
	}
	defer src.Close()

	limit := rule.MaxBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return nil, "", apperr.Validation("File tidak bisa dibaca")
	}
	if int64(len(data)) > limit {
		return nil, "", apperr.Validationf("Ukuran file maksimal %d KB", limit/1024)
	}
	if len(data) == 0 {
		return nil, "", apperr.Validation("File kosong")
	}

	ct := DetectContentType(data)
	if len(rule.MIMEs) > 0 {
		ok := false
		for _, m := range rule.MIMEs {
			if strings.HasPrefix(ct, m) {
				ok = true
				break
			}
		}
		if !ok {
			return nil, "", apperr.Validationf("Tipe file %q tidak diizinkan", ct)
		}
	}
	return data, ct, nil
}

func DetectContentType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if strings.EqualFold(it, s) {
			return true
		}
	}
	return false
}
