package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
)

// AssetUpload is the hosted location of an uploaded image.
type AssetUpload struct {
	SecureURL    string
	ThumbnailURL string
	PublicID     string
}

// AssetHost hosts product images. Destroy is called best-effort: callers
// log a failure instead of propagating it.
type AssetHost interface {
	Upload(ctx context.Context, file interface{}, publicID string) (*AssetUpload, error)
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryHost is the production AssetHost. Credentials come from the
// CLOUDINARY_URL environment variable.
type CloudinaryHost struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryHost(folder string) (*CloudinaryHost, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("cloudinary init error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryHost{cld: cld, folder: folder}, nil
}

func (h *CloudinaryHost) Upload(ctx context.Context, file interface{}, publicID string) (*AssetUpload, error) {
	resp, err := h.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   h.folder,
	})
	if err != nil {
		return nil, err
	}

	return &AssetUpload{
		SecureURL:    resp.SecureURL,
		ThumbnailURL: thumbnailURL(resp.SecureURL),
		PublicID:     resp.PublicID,
	}, nil
}

func (h *CloudinaryHost) Destroy(ctx context.Context, publicID string) error {
	_, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// thumbnailURL derives a 300px-wide delivery URL from a Cloudinary secure
// URL by injecting a transformation segment.
func thumbnailURL(secureURL string) string {
	const marker = "/upload/"
	idx := strings.Index(secureURL, marker)
	if idx < 0 {
		return secureURL
	}
	return secureURL[:idx+len(marker)] + "c_limit,w_300/" + secureURL[idx+len(marker):]
}
