package service

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDocx(t *testing.T) {
	assert.True(t, IsDocx(fixtureDocx(t)))
	assert.False(t, IsDocx([]byte("%PDF-1.4")))
	assert.False(t, IsDocx(buildZip(t, zipEntry{"readme.txt", "halo"})))
}

func TestPlaceholders(t *testing.T) {
	keys, err := Placeholders(fixtureDocx(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"fakultas", "judul", "nama", "nim"}, keys)
}

func TestFillDocxGolden(t *testing.T) {
	out, missing, err := FillDocx(fixtureDocx(t), map[string]string{
		"nama":     "Siti & Budi <A>",
		"nim":      "2101",
		"judul":    `Analisis "Big Data"`,
		"fakultas": "Fakultas Ilmu Komputer",
	})
	require.NoError(t, err)
	assert.Empty(t, missing)

	g := goldie.New(t)
	g.Assert(t, "document_filled", []byte(readEntry(t, out, "word/document.xml")))

	assert.Contains(t, readEntry(t, out, "word/header1.xml"), "<w:t>Fakultas Ilmu Komputer</w:t>")
	assert.Equal(t, fixtureStyles, readEntry(t, out, "word/styles.xml"))
	assert.True(t, IsDocx(out))
}

func TestFillDocxReportsMissingKeys(t *testing.T) {
	out, missing, err := FillDocx(fixtureDocx(t), map[string]string{"nama": "Siti"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fakultas", "judul", "nim"}, missing)
	assert.Contains(t, readEntry(t, out, "word/document.xml"), "{{ judul }}")
}

func TestMatchKeyRejectsCrossParagraph(t *testing.T) {
	src := `<w:p><w:r><w:t>{{na</w:t></w:r></w:p><w:p><w:r><w:t>ma}}</w:t></w:r></w:p>`
	missing := map[string]struct{}{}
	assert.Equal(t, src, fillXML(src, map[string]string{"nama": "X"}, missing))
	assert.Empty(t, missing)
}

func TestStringifyValues(t *testing.T) {
	got := StringifyValues(map[string]any{
		"angka":  float64(2024),
		"ya":     true,
		"kosong": nil,
		"list":   []any{"a", "b"},
		" nama ": "Siti",
	})
	assert.Equal(t, "2024", got["angka"])
	assert.Equal(t, "true", got["ya"])
	assert.Equal(t, "", got["kosong"])
	assert.Equal(t, `["a","b"]`, got["list"])
	assert.Equal(t, "Siti", got["nama"])
}
