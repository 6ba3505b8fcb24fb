package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
	// RootFolder prefixes every folder passed to Save.
	RootFolder string
}

// CloudinaryStorage uploads images to Cloudinary and returns the secure URL.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
	cfg CloudinaryConfig
}

func NewCloudinaryStorage(cfg CloudinaryConfig) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	if cfg.RootFolder == "" {
		cfg.RootFolder = "aura"
	}
	return &CloudinaryStorage{cld: cld, cfg: cfg}, nil
}

func (s *CloudinaryStorage) Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	img, err := openImage(fh)
	if err != nil {
		return "", err
	}
	defer img.file.Close()

	resp, err := s.cld.Upload.Upload(ctx, img.file, uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       s.cfg.RootFolder + "/" + sanitizeFolder(folder),
		UploadPreset: s.cfg.UploadPreset,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
