package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/policy"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// ReviewService orchestrates review CRUD. A review is always attached to an
// existing bootcamp and mutable only by its author or an admin.
type ReviewService struct {
	repo      repositories.ReviewRepository
	bootcamps repositories.BootcampRepository
}

// NewReviewService creates a new review service
func NewReviewService(repo repositories.ReviewRepository, bootcamps repositories.BootcampRepository) *ReviewService {
	return &ReviewService{
		repo:      repo,
		bootcamps: bootcamps,
	}
}

// ReviewInput carries the caller-supplied fields for a new review.
type ReviewInput struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}

// ReviewPatch carries the fields an update may change. The bootcamp linkage
// is immutable and absent here.
type ReviewPatch struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Rating *int    `json:"rating"`
}

// Create verifies the parent bootcamp exists, then inserts the review
// authored by the actor. No insert happens when the bootcamp is missing.
func (s *ReviewService) Create(ctx context.Context, actor policy.Actor, bootcampID string, input ReviewInput) (*entities.Review, error) {
	if _, err := s.bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &entities.Review{
		ID:         uuid.New().String(),
		BootcampID: bootcampID,
		AuthorID:   actor.ID,
		Title:      input.Title,
		Body:       input.Body,
		Rating:     input.Rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// GetByID retrieves a review by ID
func (s *ReviewService) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves reviews
func (s *ReviewService) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, error) {
	return s.repo.List(ctx, filter)
}

// Update loads the review, authorizes the actor against its author, applies
// the patch and re-validates before writing.
func (s *ReviewService) Update(ctx context.Context, actor policy.Actor, id string, patch ReviewPatch) (*entities.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanMutate(actor, review.AuthorID) {
		return nil, apperrors.NewForbiddenError(
			fmt.Sprintf("user %s is not authorized to update this review", actor.ID))
	}

	if patch.Title != nil {
		review.Title = *patch.Title
	}
	if patch.Body != nil {
		review.Body = *patch.Body
	}
	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// Delete loads the review, authorizes the actor and removes it.
func (s *ReviewService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanMutate(actor, review.AuthorID) {
		return apperrors.NewForbiddenError(
			fmt.Sprintf("user %s is not authorized to delete this review", actor.ID))
	}

	return s.repo.Delete(ctx, id)
}
