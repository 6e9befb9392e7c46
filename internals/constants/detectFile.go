package constants

import (
	"path/filepath"
	"strings"
)

type FileKind int

const (
	FileUnknown FileKind = 99
	FileDOCX    FileKind = 3
	FilePDF     FileKind = 4
	FileImage   FileKind = 6
	FileCSV     FileKind = 7
)

func DetectFileTypeFromExt(filename string) FileKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return FileDOCX
	case ".pdf":
		return FilePDF
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileImage
	case ".csv":
		return FileCSV
	default:
		return FileUnknown
	}
}

// Batas ukuran upload per jenis file
const (
	MaxAvatarBytes   = 2 << 20
	MaxCSVBytes      = 2 << 20
	MaxTemplateBytes = 5 << 20
	MaxThesisPDF     = 10 << 20
)

var (
	ImageExts    = []string{".png", ".jpg", ".jpeg", ".webp"}
	ImageMIMEs   = []string{"image/png", "image/jpeg", "image/webp"}
	PDFExts      = []string{".pdf"}
	PDFMIMEs     = []string{"application/pdf"}
	DOCXExts     = []string{".docx"}
	DOCXMIMEs    = []string{"application/zip"} // docx = zip container
	CSVExts      = []string{".csv"}
	CSVMIMEs     = []string{"text/plain", "text/csv", "application/octet-stream"}
)
