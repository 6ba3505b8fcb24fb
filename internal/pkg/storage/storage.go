// Package storage persists uploaded images and returns the URL clients use to fetch them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const MaxImageSize = 10 * 1024 * 1024

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrInvalidMimeType = errors.New("file type is not allowed")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Storage interface {
	// Save stores the file under folder ("services", "categories", ...) and returns its public URL.
	Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error)
}

type checkedFile struct {
	file multipart.File
	mime string
	ext  string
}

// openImage validates size and sniffed MIME type and rewinds the file.
func openImage(fh *multipart.FileHeader) (*checkedFile, error) {
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > MaxImageSize {
		return nil, ErrFileTooLarge
	}
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("detect mime: %w", err)
	}
	ext, ok := allowedImageTypes[mt.String()]
	if !ok {
		_ = file.Close()
		return nil, ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		_ = file.Close()
		return nil, err
	}
	return &checkedFile{file: file, mime: mt.String(), ext: ext}, nil
}

func sanitizeFolder(folder string) string {
	folder = strings.Trim(filepath.ToSlash(filepath.Clean("/"+folder)), "/")
	if folder == "" || folder == "." {
		return "misc"
	}
	return folder
}
