package entities

import (
	"strings"
	"time"

	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// Role is the coarse access level carried by every authenticated actor.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account in the directory. Credentials and sessions live
// in the external auth subsystem; this service only manages the profile and
// reads id+role for authorization.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks field constraints.
func (u *User) Validate() error {
	var violations []string

	if strings.TrimSpace(u.Name) == "" {
		violations = append(violations, "name is required")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		violations = append(violations, "email must be a valid email address")
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		violations = append(violations, "role must be user or admin")
	}

	if len(violations) > 0 {
		return apperrors.NewValidationError(strings.Join(violations, "; "))
	}
	return nil
}
