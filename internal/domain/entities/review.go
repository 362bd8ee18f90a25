package entities

import (
	"strings"
	"time"

	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// Review represents a rated comment authored by a user against one bootcamp.
// BootcampID is set at creation and never changes afterwards.
type Review struct {
	ID         string    `json:"id" db:"id"`
	BootcampID string    `json:"bootcamp_id" db:"bootcamp_id"`
	AuthorID   string    `json:"author_id" db:"author_id"`
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	Rating     int       `json:"rating" db:"rating"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks field constraints. It runs on create and again on the
// merged result of every update.
func (r *Review) Validate() error {
	var violations []string

	if strings.TrimSpace(r.Title) == "" {
		violations = append(violations, "title is required")
	}
	if len(r.Title) > 100 {
		violations = append(violations, "title can not be more than 100 characters")
	}
	if strings.TrimSpace(r.Body) == "" {
		violations = append(violations, "body is required")
	}
	if r.Rating < 1 || r.Rating > 10 {
		violations = append(violations, "rating must be between 1 and 10")
	}
	if r.BootcampID == "" {
		violations = append(violations, "bootcamp id is required")
	}

	if len(violations) > 0 {
		return apperrors.NewValidationError(strings.Join(violations, "; "))
	}
	return nil
}
