package repositories

import (
	"context"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/geo"
)

// BootcampRepository defines the interface for bootcamp data operations
type BootcampRepository interface {
	// Create inserts a new bootcamp
	Create(ctx context.Context, bootcamp *entities.Bootcamp) error

	// GetByID retrieves a bootcamp by ID
	GetByID(ctx context.Context, id string) (*entities.Bootcamp, error)

	// FindByOwner returns the first bootcamp published by the given owner,
	// or nil when the owner has none
	FindByOwner(ctx context.Context, ownerID string) (*entities.Bootcamp, error)

	// Update persists the full bootcamp row in a single statement
	Update(ctx context.Context, bootcamp *entities.Bootcamp) error

	// UpdatePhoto sets only the photo column
	UpdatePhoto(ctx context.Context, id, filename string) error

	// Delete removes a bootcamp
	Delete(ctx context.Context, id string) error

	// List retrieves bootcamps with filters
	List(ctx context.Context, filter BootcampFilter) ([]*entities.Bootcamp, error)

	// FindWithin returns bootcamps whose location lies inside the spherical
	// cap of the given angular radius (radians) around center
	FindWithin(ctx context.Context, center geo.Point, radiusRadians float64) ([]*entities.Bootcamp, error)
}

// BootcampFilter defines filters for listing bootcamps
type BootcampFilter struct {
	Career  string
	Housing *bool
	Limit   int
	Offset  int
}
