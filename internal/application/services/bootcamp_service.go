package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/geo"
	"github.com/devtrails/bootcamp-directory/internal/domain/policy"
	"github.com/devtrails/bootcamp-directory/internal/domain/providers"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// BootcampService orchestrates bootcamp CRUD, radius search and photo
// uploads. Every mutation runs the ownership policy before touching the
// store.
type BootcampService struct {
	repo           repositories.BootcampRepository
	reviews        repositories.ReviewRepository
	geocoder       providers.GeolocationProvider
	files          providers.FileStore
	uploads        *UploadValidator
	cascadeReviews bool
}

// NewBootcampService creates a new bootcamp service
func NewBootcampService(
	repo repositories.BootcampRepository,
	reviews repositories.ReviewRepository,
	geocoder providers.GeolocationProvider,
	files providers.FileStore,
	uploads *UploadValidator,
	cascadeReviews bool,
) *BootcampService {
	return &BootcampService{
		repo:           repo,
		reviews:        reviews,
		geocoder:       geocoder,
		files:          files,
		uploads:        uploads,
		cascadeReviews: cascadeReviews,
	}
}

// BootcampInput carries the caller-supplied fields for a new bootcamp.
type BootcampInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Website     string   `json:"website"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Careers     []string `json:"careers"`
	AverageCost float64  `json:"average_cost"`
	Housing     bool     `json:"housing"`
}

// BootcampPatch carries the fields an update may change. Nil means "leave as
// is". The owner, location and photo are never patchable through this path.
type BootcampPatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Website     *string   `json:"website"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	Careers     *[]string `json:"careers"`
	AverageCost *float64  `json:"average_cost"`
	Housing     *bool     `json:"housing"`
}

// Create inserts a new bootcamp owned by the actor. Non-admin owners may hold
// at most one bootcamp; the check reads then inserts without a transaction,
// so two racing creates can both pass — an accepted gap, not a guarantee.
func (s *BootcampService) Create(ctx context.Context, actor policy.Actor, input BootcampInput) (*entities.Bootcamp, error) {
	if !actor.IsAdmin() {
		existing, err := s.repo.FindByOwner(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewConflictError(
				fmt.Sprintf("the user with id %s has already published a bootcamp", actor.ID))
		}
	}

	now := time.Now().UTC()
	bootcamp := &entities.Bootcamp{
		ID:          uuid.New().String(),
		OwnerID:     actor.ID,
		Name:        input.Name,
		Slug:        entities.Slugify(input.Name),
		Description: input.Description,
		Website:     input.Website,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		Careers:     input.Careers,
		AverageCost: input.AverageCost,
		Housing:     input.Housing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := bootcamp.Validate(); err != nil {
		return nil, err
	}

	// The location is derived once, at creation.
	addr, err := s.geocoder.Geocode(ctx, input.Address)
	if err != nil {
		return nil, err
	}
	bootcamp.Location = entities.Location{
		Longitude:        addr.Longitude,
		Latitude:         addr.Latitude,
		FormattedAddress: addr.FormattedAddress,
		City:             addr.City,
		Zipcode:          addr.Zipcode,
	}

	if err := s.repo.Create(ctx, bootcamp); err != nil {
		return nil, err
	}

	return bootcamp, nil
}

// GetByID retrieves a bootcamp by ID
func (s *BootcampService) GetByID(ctx context.Context, id string) (*entities.Bootcamp, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves bootcamps
func (s *BootcampService) List(ctx context.Context, filter repositories.BootcampFilter) ([]*entities.Bootcamp, error) {
	return s.repo.List(ctx, filter)
}

// Update loads the bootcamp, authorizes the actor, applies the patch and
// re-validates the merged result before the single-statement write.
func (s *BootcampService) Update(ctx context.Context, actor policy.Actor, id string, patch BootcampPatch) (*entities.Bootcamp, error) {
	bootcamp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanMutate(actor, bootcamp.OwnerID) {
		return nil, apperrors.NewForbiddenError(
			fmt.Sprintf("user %s is not authorized to update this bootcamp", actor.ID))
	}

	applyBootcampPatch(bootcamp, patch)

	if err := bootcamp.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, bootcamp); err != nil {
		return nil, err
	}

	return bootcamp, nil
}

// Delete loads the bootcamp, authorizes the actor and removes it. When the
// cascade policy is enabled the bootcamp's reviews go first.
func (s *BootcampService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	bootcamp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanMutate(actor, bootcamp.OwnerID) {
		return apperrors.NewForbiddenError(
			fmt.Sprintf("user %s is not authorized to delete this bootcamp", actor.ID))
	}

	if s.cascadeReviews {
		if err := s.reviews.DeleteByBootcamp(ctx, id); err != nil {
			return err
		}
		log.Info().Str("bootcamp_id", id).Msg("cascaded review deletion")
	}

	return s.repo.Delete(ctx, id)
}

// FindWithinRadius resolves the zipcode to a coordinate and returns every
// bootcamp inside the spherical cap of the given distance around it. A
// geocoding failure aborts the search; there is no retry here.
func (s *BootcampService) FindWithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]*entities.Bootcamp, error) {
	if distanceMiles <= 0 {
		return nil, apperrors.NewValidationError("distance must be greater than zero")
	}

	addr, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}

	center := geo.Point{Longitude: addr.Longitude, Latitude: addr.Latitude}
	return s.repo.FindWithin(ctx, center, geo.AngularRadius(distanceMiles))
}

// UploadPhoto validates the upload, stores the bytes under the derived name
// and records the filename on the bootcamp.
func (s *BootcampService) UploadPhoto(ctx context.Context, actor policy.Actor, id string, upload *Upload) (string, error) {
	bootcamp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !policy.CanMutate(actor, bootcamp.OwnerID) {
		return "", apperrors.NewForbiddenError(
			fmt.Sprintf("user %s is not authorized to update this bootcamp", actor.ID))
	}

	if err := s.uploads.Validate(upload); err != nil {
		return "", err
	}

	name := StoredPhotoName(id, upload.Filename)
	if err := s.files.Save(ctx, name, upload.Content); err != nil {
		return "", apperrors.NewInternalError("problem with file upload", err)
	}

	if err := s.repo.UpdatePhoto(ctx, id, name); err != nil {
		return "", err
	}

	return name, nil
}

func applyBootcampPatch(b *entities.Bootcamp, patch BootcampPatch) {
	if patch.Name != nil {
		b.Name = *patch.Name
		b.Slug = entities.Slugify(*patch.Name)
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Website != nil {
		b.Website = *patch.Website
	}
	if patch.Phone != nil {
		b.Phone = *patch.Phone
	}
	if patch.Email != nil {
		b.Email = *patch.Email
	}
	if patch.Careers != nil {
		b.Careers = *patch.Careers
	}
	if patch.AverageCost != nil {
		b.AverageCost = *patch.AverageCost
	}
	if patch.Housing != nil {
		b.Housing = *patch.Housing
	}
}
