package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/odezzy/wall_api/config"
)

type Cloudinary struct {
	CLD *cloudinary.Cloudinary
}

func NewCloudinary(cfg *config.Config) *Cloudinary {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}

	return &Cloudinary{CLD: cld}
}

func (c *Cloudinary) UploadImage(ctx context.Context, filePath string, folder string) (string, error) {
	resp, err := c.CLD.Upload.Upload(ctx, filePath, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

// UploadBase64 uploads an embedded base64 image payload as a data URI.
// contentType is the declared media type, e.g. "image/png".
func (c *Cloudinary) UploadBase64(ctx context.Context, contentType, base64Data, folder string) (string, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64Data)
	resp, err := c.CLD.Upload.Upload(ctx, dataURI, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
