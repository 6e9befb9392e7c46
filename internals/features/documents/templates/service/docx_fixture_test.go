package service

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>Nama: {{nama}}</w:t></w:r></w:p><w:p><w:r><w:t>NIM: {{</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>nim</w:t></w:r><w:r><w:t>}}</w:t></w:r></w:p><w:p><w:r><w:t>Judul: {{ judul }}</w:t></w:r></w:p><w:p><w:r><w:t>Bukan placeholder: {{nama lengkap}}</w:t></w:r></w:p></w:body></w:document>
`

const fixtureHeader = `<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>{{fakultas}}</w:t></w:r></w:p></w:hdr>`

const fixtureStyles = `<w:styles><!-- {{bukan_bagian_isi}} --></w:styles>`

type zipEntry struct {
	name, body string
}

func buildZip(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		require.NoError(t, err)
		_, err = io.WriteString(f, e.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func fixtureDocx(t *testing.T) []byte {
	return buildZip(t,
		zipEntry{"[Content_Types].xml", `<Types/>`},
		zipEntry{"word/document.xml", fixtureDocument},
		zipEntry{"word/header1.xml", fixtureHeader},
		zipEntry{"word/styles.xml", fixtureStyles},
	)
}

func readEntry(t *testing.T, docx []byte, name string) string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	require.NoError(t, err)
	for _, f := range r.File {
		if f.Name == name {
			b, err := readZipFile(f)
			require.NoError(t, err)
			return string(b)
		}
	}
	t.Fatalf("entry %s tidak ada", name)
	return ""
}
