package service

import (
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/models"
)

// MaxImageBytes caps uploaded image files.
const MaxImageBytes = 5 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

var imageURLValidator = validator.New()

// ValidateImageSource rejects a source before any request is sent. A file wins
// over a URL when both are set. The returned source carries the sniffed
// content type for files.
func ValidateImageSource(source models.ImageSource) (models.ImageSource, error) {
	if source.File != nil && len(source.File.Data) > 0 {
		if len(source.File.Data) > MaxImageBytes {
			return models.ImageSource{}, apperrors.NewValidationError("image", "image must not exceed 5 MB")
		}
		detected := mimetype.Detect(source.File.Data)
		if !isAllowedImage(detected) {
			return models.ImageSource{}, apperrors.NewValidationError("image", "unsupported format, use JPEG, PNG, WEBP or GIF")
		}
		file := *source.File
		file.ContentType = baseType(detected.String())
		return models.ImageSource{File: &file}, nil
	}

	raw := strings.TrimSpace(source.URL)
	if raw == "" {
		return models.ImageSource{}, apperrors.NewValidationError("image", "an image file or URL is required")
	}
	if err := imageURLValidator.Var(raw, "url"); err != nil {
		return models.ImageSource{}, apperrors.NewValidationError("image_url", "image_url must be a valid URL")
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return models.ImageSource{}, apperrors.NewValidationError("image_url", "image_url must start with http:// or https://")
	}
	return models.ImageSource{URL: raw}, nil
}

func isAllowedImage(detected *mimetype.MIME) bool {
	for _, t := range allowedImageTypes {
		if detected.Is(t) {
			return true
		}
	}
	return false
}

func baseType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		return strings.TrimSpace(contentType[:i])
	}
	return contentType
}
