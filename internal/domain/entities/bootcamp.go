package entities

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// Bootcamp represents a published bootcamp listing owned by one user.
type Bootcamp struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Website     string    `json:"website,omitempty" db:"website"`
	Phone       string    `json:"phone,omitempty" db:"phone"`
	Email       string    `json:"email,omitempty" db:"email"`
	Address     string    `json:"address,omitempty" db:"address"`
	Location    Location  `json:"location" db:"-"`
	Careers     []string  `json:"careers" db:"-"`
	AverageCost float64   `json:"average_cost,omitempty" db:"average_cost"`
	Photo       string    `json:"photo,omitempty" db:"photo"`
	Housing     bool      `json:"housing" db:"housing"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Location represents the geocoded point for a bootcamp's address.
// Longitude comes first on the wire to match GeoJSON ordering.
type Location struct {
	Longitude        float64 `json:"longitude" db:"longitude"`
	Latitude         float64 `json:"latitude" db:"latitude"`
	FormattedAddress string  `json:"formatted_address,omitempty" db:"formatted_address"`
	City             string  `json:"city,omitempty" db:"city"`
	Zipcode          string  `json:"zipcode,omitempty" db:"zipcode"`
}

var (
	urlPattern  = regexp.MustCompile(`^https?://`)
	slugPattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// Validate checks field constraints. It runs on create and again on the
// merged result of every update.
func (b *Bootcamp) Validate() error {
	var violations []string

	if strings.TrimSpace(b.Name) == "" {
		violations = append(violations, "name is required")
	}
	if len(b.Name) > 50 {
		violations = append(violations, "name can not be more than 50 characters")
	}
	if strings.TrimSpace(b.Description) == "" {
		violations = append(violations, "description is required")
	}
	if len(b.Description) > 500 {
		violations = append(violations, "description can not be more than 500 characters")
	}
	if b.Website != "" && !urlPattern.MatchString(b.Website) {
		violations = append(violations, "website must be a valid http or https URL")
	}
	if len(b.Phone) > 20 {
		violations = append(violations, "phone can not be longer than 20 characters")
	}
	if b.Email != "" && !strings.Contains(b.Email, "@") {
		violations = append(violations, "email must be a valid email address")
	}
	if b.AverageCost < 0 {
		violations = append(violations, "average cost can not be negative")
	}

	if len(violations) > 0 {
		return apperrors.NewValidationError(strings.Join(violations, "; "))
	}
	return nil
}

// Slugify derives the URL slug from the bootcamp name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// String implements fmt.Stringer for log output.
func (b *Bootcamp) String() string {
	return fmt.Sprintf("Bootcamp(%s %q)", b.ID, b.Name)
}
