// file: internals/helpers/slug.go
package helper

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// stripMarks menghapus diakritik (é → e) lewat dekomposisi NFD.
func stripMarks(s string) string {
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	return string(buf)
}

// Slugify mengubah teks bebas jadi slug [a-z0-9-], hilangkan diakritik,
// kompres "-", trim ujung, enforce maxLen (default 100 jika <=0), fallback "item".
func Slugify(s string, maxLen int) string {
	if s = SlugifyPart(s, maxLen); s == "" {
		return "item"
	}
	return s
}

// SlugifyPart sama dengan Slugify tanpa fallback: hasil "" berarti tidak ada
// karakter yang tersisa, pemanggil yang menentukan penggantinya.
func SlugifyPart(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = stripMarks(strings.ToLower(strings.TrimSpace(s)))
	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), "-")
	}
	return s
}

// NormalizeCode: kode CPL/CPMK disimpan uppercase tanpa spasi ganda ("cpmk 01" → "CPMK 01").
func NormalizeCode(s string) string {
	s = stripMarks(strings.TrimSpace(s))
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.ToUpper(s)
}

// NormalizeName: trim + kompres spasi, casing dibiarkan.
func NormalizeName(s string) string {
	return reSpaces.ReplaceAllString(strings.TrimSpace(s), " ")
}
