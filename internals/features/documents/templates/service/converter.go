package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"skripsiku_backend/internals/helpers/apperr"
)

// PDFConverter mengubah DOCX menjadi PDF.
type PDFConverter interface {
	Convert(ctx context.Context, filename string, docx []byte) ([]byte, error)
}

// GotenbergConverter memanggil endpoint LibreOffice ala Gotenberg:
// POST {BaseURL}/forms/libreoffice/convert, multipart field "files".
type GotenbergConverter struct {
	BaseURL string
	Timeout time.Duration
}

func NewGotenbergConverter(baseURL string, timeout time.Duration) *GotenbergConverter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GotenbergConverter{BaseURL: baseURL, Timeout: timeout}
}

func (g *GotenbergConverter) Convert(ctx context.Context, filename string, docx []byte) ([]byte, error) {
	timeout := g.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, apperr.Upstream("Konversi PDF dibatalkan (timeout)", ctx.Err())
	}

	agent := fiber.Post(g.BaseURL + "/forms/libreoffice/convert")
	agent.Timeout(timeout)
	agent.FileData(&fiber.FormFile{Fieldname: "files", Name: filename, Content: docx})
	agent.MultipartForm(nil)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, apperr.Upstream("Layanan konversi PDF tidak dapat dihubungi", errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return nil, apperr.Upstream(fmt.Sprintf("Konversi PDF gagal (HTTP %d)", code), errors.New(snippet(body)))
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		return nil, apperr.Upstream("Layanan konversi tidak mengembalikan PDF", nil)
	}
	return body, nil
}

func snippet(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
