package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// Upload carries the declared metadata and content of an incoming file. The
// transport layer fills it from the multipart form; nothing here trusts the
// client-supplied name beyond its extension.
type Upload struct {
	Filename  string
	MediaType string
	Size      int64
	Content   io.Reader
}

// UploadValidator enforces the photo upload policy: a file must be present,
// it must declare an image media type, and it must fit the configured size
// limit. Checks run in that order; the first failure wins.
type UploadValidator struct {
	maxBytes int64
}

// NewUploadValidator creates a validator with the configured size limit.
func NewUploadValidator(maxBytes int64) *UploadValidator {
	return &UploadValidator{maxBytes: maxBytes}
}

// Validate checks an upload against the policy.
func (v *UploadValidator) Validate(upload *Upload) error {
	if upload == nil || upload.Content == nil {
		return apperrors.NewValidationError("please upload a file")
	}
	if !strings.HasPrefix(upload.MediaType, "image/") {
		return apperrors.NewValidationError("please upload an image file")
	}
	if upload.Size > v.maxBytes {
		return apperrors.NewValidationError(fmt.Sprintf("please upload an image less than %d bytes", v.maxBytes))
	}
	return nil
}

// StoredPhotoName derives the stored filename from the owning bootcamp's id
// and the upload's original extension. The uploaded name itself is discarded,
// which rules out path traversal and cross-listing collisions.
func StoredPhotoName(bootcampID, originalName string) string {
	return "photo_" + bootcampID + filepath.Ext(originalName)
}
