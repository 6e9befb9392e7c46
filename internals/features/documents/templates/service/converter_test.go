package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/helpers/apperr"
)

func TestGotenbergConverterSendsMultipart(t *testing.T) {
	var gotPath, gotName string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		f, fh, err := r.FormFile("files")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		gotName = fh.Filename
		gotBody, _ = io.ReadAll(f)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 hasil"))
	}))
	defer srv.Close()

	conv := NewGotenbergConverter(srv.URL, 5*time.Second)
	pdf, err := conv.Convert(context.Background(), "surat.docx", []byte("isi-docx"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 hasil", string(pdf))
	assert.Equal(t, "/forms/libreoffice/convert", gotPath)
	assert.Equal(t, "surat.docx", gotName)
	assert.Equal(t, "isi-docx", string(gotBody))
}

func TestGotenbergConverterUpstreamErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status 500", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "libreoffice crash", http.StatusInternalServerError)
		}},
		{"bukan pdf", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			_, err := NewGotenbergConverter(srv.URL, 5*time.Second).Convert(context.Background(), "a.docx", []byte("x"))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrUpstream)
		})
	}
}

func TestGotenbergConverterUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewGotenbergConverter(url, time.Second).Convert(context.Background(), "a.docx", []byte("x"))
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestGotenbergConverterExpiredContext(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := NewGotenbergConverter("http://127.0.0.1:1", time.Second).Convert(ctx, "a.docx", []byte("x"))
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}
