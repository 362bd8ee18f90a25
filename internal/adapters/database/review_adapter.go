package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
	"github.com/devtrails/bootcamp-directory/internal/infrastructure/clients/postgres"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// ReviewAdapter implements the ReviewRepository interface on Postgres.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":          review.ID,
		"bootcamp_id": review.BootcampID,
		"author_id":   review.AuthorID,
		"title":       review.Title,
		"body":        review.Body,
		"rating":      review.Rating,
		"created_at":  review.CreatedAt,
		"updated_at":  review.UpdatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// GetByID retrieves a review by ID
func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	query := `
		SELECT id, bootcamp_id, author_id, title, body, rating, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	review := &entities.Review{}
	err := a.client.DB().QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.BootcampID,
		&review.AuthorID,
		&review.Title,
		&review.Body,
		&review.Rating,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}

	return review, nil
}

// Update persists the full review row in a single statement. The bootcamp
// linkage is immutable, so bootcamp_id never appears in the SET list.
func (a *ReviewAdapter) Update(ctx context.Context, review *entities.Review) error {
	review.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("reviews").
		Set(goqu.Record{
			"title":      review.Title,
			"body":       review.Body,
			"rating":     review.Rating,
			"updated_at": review.UpdatedAt,
		}).
		Where(goqu.Ex{"id": review.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update review", err)
	}

	return requireRow(result, fmt.Sprintf("review with id %s not found", review.ID))
}

// Delete removes a review
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reviews").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}

	return requireRow(result, fmt.Sprintf("review with id %s not found", id))
}

// List retrieves reviews with filters
func (a *ReviewAdapter) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, error) {
	query := `
		SELECT id, bootcamp_id, author_id, title, body, rating, created_at, updated_at
		FROM reviews
		WHERE 1=1
	`

	args := []interface{}{}
	argCount := 1

	if filter.BootcampID != "" {
		query += fmt.Sprintf(" AND bootcamp_id = $%d", argCount)
		args = append(args, filter.BootcampID)
		argCount++
	}

	if filter.AuthorID != "" {
		query += fmt.Sprintf(" AND author_id = $%d", argCount)
		args = append(args, filter.AuthorID)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review := &entities.Review{}
		err := rows.Scan(
			&review.ID,
			&review.BootcampID,
			&review.AuthorID,
			&review.Title,
			&review.Body,
			&review.Rating,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reviews", err)
	}

	return reviews, nil
}

// DeleteByBootcamp removes every review attached to a bootcamp. Zero rows is
// not an error here: a bootcamp without reviews is a valid cascade target.
func (a *ReviewAdapter) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	query, args, err := a.db.Delete("reviews").Where(goqu.Ex{"bootcamp_id": bootcampID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build cascade delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete reviews for bootcamp", err)
	}

	return nil
}
