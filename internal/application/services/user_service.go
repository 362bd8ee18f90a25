package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
)

// UserService handles user account CRUD. All operations are admin-only; the
// gate sits in the handler where the actor is known.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// UserInput carries the fields for creating a user.
type UserInput struct {
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  entities.Role `json:"role"`
}

// UserPatch carries the fields an update may change.
type UserPatch struct {
	Name  *string        `json:"name"`
	Email *string        `json:"email"`
	Role  *entities.Role `json:"role"`
}

// Create inserts a new user
func (s *UserService) Create(ctx context.Context, input UserInput) (*entities.User, error) {
	role := input.Role
	if role == "" {
		role = entities.RoleUser
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves users
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update applies the patch and re-validates before writing.
func (s *UserService) Update(ctx context.Context, id string, patch UserPatch) (*entities.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
