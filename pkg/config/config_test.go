package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_UploadConfig(t *testing.T) {
	os.Setenv("MAX_FILE_UPLOAD", "2000000")
	os.Setenv("FILE_UPLOAD_PATH", "/var/uploads")
	defer func() {
		os.Unsetenv("MAX_FILE_UPLOAD")
		os.Unsetenv("FILE_UPLOAD_PATH")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, int64(2_000_000), cfg.Upload.MaxFileBytes)
	assert.Equal(t, "/var/uploads", cfg.Upload.Path)
}

func TestLoad_CascadeConfig(t *testing.T) {
	os.Setenv("CASCADE_DELETE_REVIEWS", "true")
	defer os.Unsetenv("CASCADE_DELETE_REVIEWS")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.True(t, cfg.Cascade.DeleteReviews)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("MAX_FILE_UPLOAD")
	os.Unsetenv("FILE_UPLOAD_PATH")
	os.Unsetenv("CASCADE_DELETE_REVIEWS")
	os.Unsetenv("GEOCODER_PROVIDER")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, int64(1_000_000), cfg.Upload.MaxFileBytes)
	assert.Equal(t, "./public/uploads", cfg.Upload.Path)
	assert.False(t, cfg.Cascade.DeleteReviews)
	assert.Equal(t, "mock", cfg.Geocoder.Provider)
}
