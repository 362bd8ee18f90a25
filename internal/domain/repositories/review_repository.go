package repositories

import (
	"context"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	// Create inserts a new review
	Create(ctx context.Context, review *entities.Review) error

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, id string) (*entities.Review, error)

	// Update persists the full review row in a single statement
	Update(ctx context.Context, review *entities.Review) error

	// Delete removes a review
	Delete(ctx context.Context, id string) error

	// List retrieves reviews with filters
	List(ctx context.Context, filter ReviewFilter) ([]*entities.Review, error)

	// DeleteByBootcamp removes every review for a bootcamp. Used by the
	// cascade branch of bootcamp deletion.
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
}

// ReviewFilter defines filters for listing reviews
type ReviewFilter struct {
	BootcampID string
	AuthorID   string
	Limit      int
	Offset     int
}
