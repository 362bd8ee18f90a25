package services_test

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/geo"
	"github.com/devtrails/bootcamp-directory/internal/domain/providers"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// stubBootcampRepo is an in-memory BootcampRepository. FindWithin applies the
// same spherical predicate the SQL adapter encodes.
type stubBootcampRepo struct {
	bootcamps map[string]*entities.Bootcamp
	updates   int
}

func newStubBootcampRepo() *stubBootcampRepo {
	return &stubBootcampRepo{bootcamps: map[string]*entities.Bootcamp{}}
}

func (r *stubBootcampRepo) Create(ctx context.Context, b *entities.Bootcamp) error {
	r.bootcamps[b.ID] = b
	return nil
}

func (r *stubBootcampRepo) GetByID(ctx context.Context, id string) (*entities.Bootcamp, error) {
	b, ok := r.bootcamps[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("bootcamp with id %s not found", id))
	}
	clone := *b
	return &clone, nil
}

func (r *stubBootcampRepo) FindByOwner(ctx context.Context, ownerID string) (*entities.Bootcamp, error) {
	for _, b := range r.bootcamps {
		if b.OwnerID == ownerID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubBootcampRepo) Update(ctx context.Context, b *entities.Bootcamp) error {
	if _, ok := r.bootcamps[b.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("bootcamp with id %s not found", b.ID))
	}
	clone := *b
	r.bootcamps[b.ID] = &clone
	r.updates++
	return nil
}

func (r *stubBootcampRepo) UpdatePhoto(ctx context.Context, id, filename string) error {
	b, ok := r.bootcamps[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("bootcamp with id %s not found", id))
	}
	b.Photo = filename
	return nil
}

func (r *stubBootcampRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.bootcamps[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("bootcamp with id %s not found", id))
	}
	delete(r.bootcamps, id)
	return nil
}

func (r *stubBootcampRepo) List(ctx context.Context, filter repositories.BootcampFilter) ([]*entities.Bootcamp, error) {
	out := []*entities.Bootcamp{}
	for _, b := range r.bootcamps {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBootcampRepo) FindWithin(ctx context.Context, center geo.Point, radiusRadians float64) ([]*entities.Bootcamp, error) {
	out := []*entities.Bootcamp{}
	for _, b := range r.bootcamps {
		point := geo.Point{Longitude: b.Location.Longitude, Latitude: b.Location.Latitude}
		if geo.WithinRadius(center, point, radiusRadians) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

// stubReviewRepo is an in-memory ReviewRepository.
type stubReviewRepo struct {
	reviews        map[string]*entities.Review
	cascadeDeletes []string
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: map[string]*entities.Review{}}
}

func (r *stubReviewRepo) Create(ctx context.Context, review *entities.Review) error {
	r.reviews[review.ID] = review
	return nil
}

func (r *stubReviewRepo) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	clone := *review
	return &clone, nil
}

func (r *stubReviewRepo) Update(ctx context.Context, review *entities.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", review.ID))
	}
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *stubReviewRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	delete(r.reviews, id)
	return nil
}

func (r *stubReviewRepo) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, error) {
	out := []*entities.Review{}
	for _, review := range r.reviews {
		if filter.BootcampID != "" && review.BootcampID != filter.BootcampID {
			continue
		}
		clone := *review
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubReviewRepo) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	r.cascadeDeletes = append(r.cascadeDeletes, bootcampID)
	for id, review := range r.reviews {
		if review.BootcampID == bootcampID {
			delete(r.reviews, id)
		}
	}
	return nil
}

// stubGeocoder resolves a fixed token table and fails on everything else.
type stubGeocoder struct {
	addresses map[string]providers.GeocodedAddress
	calls     int
}

func newStubGeocoder() *stubGeocoder {
	return &stubGeocoder{
		addresses: map[string]providers.GeocodedAddress{
			"33125": {FormattedAddress: "Miami, FL 33125", City: "Miami", Zipcode: "33125", Latitude: 25.76, Longitude: -80.19},
		},
	}
}

func (g *stubGeocoder) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	g.calls++
	if addr, ok := g.addresses[address]; ok {
		return &addr, nil
	}
	return nil, apperrors.NewExternalError(fmt.Sprintf("no geocoding results for %q", address), nil)
}

// stubFileStore records saved files in memory.
type stubFileStore struct {
	saved map[string][]byte
	err   error
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{saved: map[string][]byte{}}
}

func (s *stubFileStore) Save(ctx context.Context, name string, r io.Reader) error {
	if s.err != nil {
		return s.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.saved[name] = buf.Bytes()
	return nil
}
