package oss

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/helpers/apperr"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	st := NewLocalStorage(t.TempDir(), "/uploads/")
	ctx := context.Background()

	url, err := st.Put(ctx, "templates/2026/10/surat.docx", []byte("isi"), "application/zip")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/templates/2026/10/surat.docx", url)

	got, err := st.Get(ctx, "templates/2026/10/surat.docx")
	require.NoError(t, err)
	assert.Equal(t, []byte("isi"), got)

	require.NoError(t, st.Delete(ctx, "templates/2026/10/surat.docx"))
	require.NoError(t, st.Delete(ctx, "templates/2026/10/surat.docx"))

	_, err = st.Get(ctx, "templates/2026/10/surat.docx")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = st.Put(ctx, "../escape.txt", []byte("x"), "")
	assert.Error(t, err)
}

func TestBuildKey(t *testing.T) {
	key := BuildKey("theses/documents", "Bab 1 Pendahuluan.PDF", "")
	assert.True(t, strings.HasPrefix(key, "theses/documents/"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)
	assert.Contains(t, key, "bab-1-pendahuluan_")

	key = BuildKey("", "x", ".webp")
	assert.True(t, strings.HasPrefix(key, "misc/"), key)
	assert.Contains(t, key, "/x_")

	key = BuildKey(" / !! /", "###.png", "")
	assert.True(t, strings.HasPrefix(key, "misc/"), key)
	assert.Contains(t, key, "/file_")

	key = BuildKey("/Lampiran//Ékonomi/", "Skripsi Ékonomi_Final.docx", "")
	assert.True(t, strings.HasPrefix(key, "lampiran/ekonomi/"), key)
	assert.Contains(t, key, "/skripsi-ekonomi-final_")
	assert.True(t, strings.HasSuffix(key, ".docx"), key)
}

func TestConvertToWebPDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1024, 512))
	for x := 0; x < 1024; x++ {
		src.Set(x, x%512, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := ConvertToWebP(buf.Bytes(), "avatar.png", WebPOptions{MaxW: 256, MaxH: 256, Quality: 70})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestConvertToWebPRejectsUnknown(t *testing.T) {
	_, err := ConvertToWebP([]byte("bukan gambar"), "x.txt", WebPOptions{})
	assert.Error(t, err)
}
