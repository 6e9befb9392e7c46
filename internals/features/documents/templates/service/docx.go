// file: internals/features/documents/templates/service/docx.go
package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

var (
	// {{ key }} boleh terpecah oleh tag run Word di antara karakternya.
	placeholderRe = regexp.MustCompile(`\{(?:<[^>]*>)*\{((?:<[^>]*>|[^{}<])*)\}(?:<[^>]*>)*\}`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	keyRe         = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

	zipSignature = []byte("PK\x03\x04")
)

const documentPart = "word/document.xml"

// IsDocx: signature zip + ada word/document.xml.
func IsDocx(data []byte) bool {
	if !bytes.HasPrefix(data, zipSignature) {
		return false
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range r.File {
		if f.Name == documentPart {
			return true
		}
	}
	return false
}

func isFillablePart(name string) bool {
	if name == documentPart {
		return true
	}
	if !strings.HasSuffix(name, ".xml") {
		return false
	}
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}

// matchKey mengembalikan key placeholder bila match aman diganti:
// tidak melintasi paragraf dan tag yang terbuang seimbang.
func matchKey(match, inner string) (string, bool) {
	key := strings.TrimSpace(tagRe.ReplaceAllString(inner, ""))
	if !keyRe.MatchString(key) {
		return "", false
	}
	open, closed := 0, 0
	for _, tag := range tagRe.FindAllString(match, -1) {
		switch {
		case strings.HasPrefix(tag, "<w:p>") || strings.HasPrefix(tag, "<w:p ") || tag == "</w:p>":
			return "", false
		case strings.HasPrefix(tag, "</"):
			closed++
		case strings.HasSuffix(tag, "/>"):
		default:
			open++
		}
	}
	if open != closed {
		return "", false
	}
	return key, true
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func fillXML(src string, values map[string]string, missing map[string]struct{}) string {
	return placeholderRe.ReplaceAllStringFunc(src, func(m string) string {
		sub := placeholderRe.FindStringSubmatch(m)
		key, ok := matchKey(m, sub[1])
		if !ok {
			return m
		}
		v, found := values[key]
		if !found {
			missing[key] = struct{}{}
			return m
		}
		return escapeXML(v)
	})
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Placeholders mendaftar key unik (urut abjad) di dokumen, header, dan footer.
func Placeholders(docx []byte) ([]string, error) {
	r, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		return nil, fmt.Errorf("buka docx: %w", err)
	}
	seen := map[string]struct{}{}
	for _, f := range r.File {
		if !isFillablePart(f.Name) {
			continue
		}
		b, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("baca %s: %w", f.Name, err)
		}
		for _, sub := range placeholderRe.FindAllStringSubmatch(string(b), -1) {
			if key, ok := matchKey(sub[0], sub[1]); ok {
				seen[key] = struct{}{}
			}
		}
	}
	return sortedKeys(seen), nil
}

// FillDocx mengganti placeholder dengan nilai ter-escape XML.
// Key tanpa nilai dibiarkan apa adanya dan dikembalikan sebagai missing.
func FillDocx(docx []byte, values map[string]string) ([]byte, []string, error) {
	r, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		return nil, nil, fmt.Errorf("buka docx: %w", err)
	}

	var out bytes.Buffer
	w := zip.NewWriter(&out)
	missing := map[string]struct{}{}

	for _, f := range r.File {
		if !isFillablePart(f.Name) {
			if err := w.Copy(f); err != nil {
				return nil, nil, fmt.Errorf("salin %s: %w", f.Name, err)
			}
			continue
		}
		b, err := readZipFile(f)
		if err != nil {
			return nil, nil, fmt.Errorf("baca %s: %w", f.Name, err)
		}
		filled := fillXML(string(b), values, missing)

		hdr := f.FileHeader
		hdr.Method = zip.Deflate
		hdr.CRC32, hdr.CompressedSize64, hdr.UncompressedSize64 = 0, 0, 0
		hdr.Extra = nil
		fw, err := w.CreateHeader(&hdr)
		if err != nil {
			return nil, nil, fmt.Errorf("tulis %s: %w", f.Name, err)
		}
		if _, err := io.WriteString(fw, filled); err != nil {
			return nil, nil, fmt.Errorf("tulis %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, nil, err
	}
	return out.Bytes(), sortedKeys(missing), nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
