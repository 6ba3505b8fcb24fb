package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage writes files under baseDir and serves them from urlBase.
type LocalStorage struct {
	baseDir string
	urlBase string
}

func NewLocalStorage(baseDir, urlBase string) *LocalStorage {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if urlBase == "" {
		urlBase = "/static"
	}
	return &LocalStorage{baseDir: baseDir, urlBase: strings.TrimRight(urlBase, "/")}
}

func (s *LocalStorage) BaseDir() string { return s.baseDir }

func (s *LocalStorage) Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := openImage(fh)
	if err != nil {
		return "", err
	}
	defer img.file.Close()

	folder = sanitizeFolder(folder)
	absDir := filepath.Join(s.baseDir, filepath.FromSlash(folder))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + img.ext
	absPath := filepath.Join(absDir, name)
	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, img.file); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join(s.urlBase, folder, name), nil
}
