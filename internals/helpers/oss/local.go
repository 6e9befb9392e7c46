// file: internals/helpers/oss/local.go
package oss

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"skripsiku_backend/internals/helpers/apperr"
)

// LocalStorage menyimpan objek di disk; dipakai saat OSS tidak dikonfigurasi.
type LocalStorage struct {
	Root       string
	PublicBase string
}

func NewLocalStorage(root, publicBase string) *LocalStorage {
	return &LocalStorage{Root: root, PublicBase: strings.TrimRight(publicBase, "/")}
}

func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimSpace(key))
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.Root, filepath.FromSlash(clean)), nil
}

func (s *LocalStorage) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *LocalStorage) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.NotFound("File tidak ditemukan di storage")
	}
	return data, err
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) PublicURL(key string) string {
	return s.PublicBase + "/" + strings.TrimLeft(key, "/")
}
