package storage

import (
	"context"
	"fmt"
	"io"

	"toolshare/models"
	"toolshare/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// StorageService uploads and removes user images on the media host.
type StorageService interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (*models.ImageRef, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld        *cloudinary.Cloudinary
	rootFolder string
}

// NewCloudinaryStorage stores every upload under rootFolder/<folder>.
func NewCloudinaryStorage(cld *cloudinary.Cloudinary, rootFolder string) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, rootFolder: rootFolder}
}

func (s *CloudinaryStorage) folder(sub string) string {
	if s.rootFolder == "" {
		return sub
	}
	return s.rootFolder + "/" + sub
}

func (s *CloudinaryStorage) UploadImage(ctx context.Context, file io.Reader, folder string) (*models.ImageRef, error) {
	params := uploader.UploadParams{
		Folder:       s.folder(folder),
		ResourceType: "image",
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("failed to upload image: no URL returned")
	}
	utils.GetLogger().Debug("image uploaded", zap.String("publicId", result.PublicID))
	return &models.ImageRef{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (s *CloudinaryStorage) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}
