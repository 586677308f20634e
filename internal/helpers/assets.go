package helpers

import (
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

const BannerFolder = "banners"

// AssetURLBuilder turns a stored file path into the URL clients download
// it from.
type AssetURLBuilder interface {
	URL(path string) string
}

// StaticAssets serves files from the API host under /files.
type StaticAssets struct {
	BaseURL string
}

func (s StaticAssets) URL(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(s.BaseURL, "/") + "/files/" + strings.TrimLeft(path, "/")
}

// CloudinaryAssets builds delivery URLs for banners stored as cloudinary
// public ids, falling back to the static URL when the id is rejected.
type CloudinaryAssets struct {
	cld      *cloudinary.Cloudinary
	fallback StaticAssets
	logger   *slog.Logger
}

func NewCloudinaryAssets(cld *cloudinary.Cloudinary, fallback StaticAssets, logger *slog.Logger) *CloudinaryAssets {
	return &CloudinaryAssets{
		cld:      cld,
		fallback: fallback,
		logger:   logger,
	}
}

func (ca *CloudinaryAssets) URL(path string) string {
	if path == "" {
		return ""
	}

	publicID := path
	if !strings.Contains(publicID, "/") {
		publicID = BannerFolder + "/" + publicID
	}

	img, err := ca.cld.Image(publicID)
	if err != nil {
		ca.logger.Warn("Failed to build cloudinary asset", "path", path, "error", err)
		return ca.fallback.URL(path)
	}
	url, err := img.String()
	if err != nil {
		ca.logger.Warn("Failed to render cloudinary url", "path", path, "error", err)
		return ca.fallback.URL(path)
	}
	return url
}
