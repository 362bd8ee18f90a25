package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "devworks-bootcamp", entities.Slugify("Devworks Bootcamp"))
	assert.Equal(t, "o-brien-s-bootcamp", entities.Slugify("  O'Brien's Bootcamp  "))
	assert.Equal(t, "camp-2024", entities.Slugify("Camp 2024!"))
	assert.Equal(t, "", entities.Slugify("!!!"))
}

func TestBootcampValidate(t *testing.T) {
	valid := entities.Bootcamp{Name: "Devworks", Description: "Full stack JavaScript"}
	assert.NoError(t, valid.Validate())

	invalid := entities.Bootcamp{
		Name:        strings.Repeat("x", 51),
		Description: "",
		Website:     "ftp://devworks.com",
		AverageCost: -1,
	}
	err := invalid.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name can not be more than 50 characters")
	assert.Contains(t, err.Error(), "description is required")
	assert.Contains(t, err.Error(), "website must be a valid http or https URL")
	assert.Contains(t, err.Error(), "average cost can not be negative")
}
