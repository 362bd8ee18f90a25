package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/geo"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
	"github.com/devtrails/bootcamp-directory/internal/infrastructure/clients/postgres"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

const bootcampColumns = `
	id, owner_id, name, slug, description, website, phone, email, address,
	longitude, latitude, formatted_address, city, zipcode,
	careers, average_cost, photo, housing, created_at, updated_at
`

// BootcampAdapter implements the BootcampRepository interface on Postgres.
type BootcampAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBootcampAdapter creates a new bootcamp adapter
func NewBootcampAdapter(client *postgres.Client) repositories.BootcampRepository {
	return &BootcampAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new bootcamp
func (a *BootcampAdapter) Create(ctx context.Context, bootcamp *entities.Bootcamp) error {
	query, args, err := a.db.Insert("bootcamps").Rows(a.record(bootcamp)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bootcamp insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create bootcamp", err)
	}

	return nil
}

// GetByID retrieves a bootcamp by ID
func (a *BootcampAdapter) GetByID(ctx context.Context, id string) (*entities.Bootcamp, error) {
	query := fmt.Sprintf(`SELECT %s FROM bootcamps WHERE id = $1`, bootcampColumns)

	bootcamp, err := scanBootcamp(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("bootcamp with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get bootcamp", err)
	}

	return bootcamp, nil
}

// FindByOwner returns the first bootcamp published by the owner, or nil.
func (a *BootcampAdapter) FindByOwner(ctx context.Context, ownerID string) (*entities.Bootcamp, error) {
	query := fmt.Sprintf(`SELECT %s FROM bootcamps WHERE owner_id = $1 LIMIT 1`, bootcampColumns)

	bootcamp, err := scanBootcamp(a.client.DB().QueryRowContext(ctx, query, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to find bootcamp by owner", err)
	}

	return bootcamp, nil
}

// Update persists the full bootcamp row in a single statement
func (a *BootcampAdapter) Update(ctx context.Context, bootcamp *entities.Bootcamp) error {
	bootcamp.UpdatedAt = time.Now().UTC()

	record := a.record(bootcamp)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("bootcamps").
		Set(record).
		Where(goqu.Ex{"id": bootcamp.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bootcamp update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update bootcamp", err)
	}

	return requireRow(result, fmt.Sprintf("bootcamp with id %s not found", bootcamp.ID))
}

// UpdatePhoto sets only the photo column
func (a *BootcampAdapter) UpdatePhoto(ctx context.Context, id, filename string) error {
	query, args, err := a.db.Update("bootcamps").
		Set(goqu.Record{"photo": filename, "updated_at": time.Now().UTC()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build photo update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update bootcamp photo", err)
	}

	return requireRow(result, fmt.Sprintf("bootcamp with id %s not found", id))
}

// Delete removes a bootcamp
func (a *BootcampAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("bootcamps").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bootcamp delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete bootcamp", err)
	}

	return requireRow(result, fmt.Sprintf("bootcamp with id %s not found", id))
}

// List retrieves bootcamps with filters
func (a *BootcampAdapter) List(ctx context.Context, filter repositories.BootcampFilter) ([]*entities.Bootcamp, error) {
	query := fmt.Sprintf(`SELECT %s FROM bootcamps WHERE 1=1`, bootcampColumns)

	args := []interface{}{}
	argCount := 1

	if filter.Career != "" {
		query += fmt.Sprintf(" AND $%d = ANY(careers)", argCount)
		args = append(args, filter.Career)
		argCount++
	}

	if filter.Housing != nil {
		query += fmt.Sprintf(" AND housing = $%d", argCount)
		args = append(args, *filter.Housing)
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
		return nil, apperrors.NewInternalError("failed to list bootcamps", err)
	}
	defer rows.Close()

	return collectBootcamps(rows)
}

// FindWithin returns bootcamps inside the spherical cap around center. The
// predicate compares the great-circle central angle against the angular
// radius in radians; least() guards acos against rounding above 1 when a
// stored point coincides with the center.
func (a *BootcampAdapter) FindWithin(ctx context.Context, center geo.Point, radiusRadians float64) ([]*entities.Bootcamp, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bootcamps
		WHERE acos(least(1.0,
			cos(radians($1)) * cos(radians(latitude)) *
			cos(radians(longitude) - radians($2)) +
			sin(radians($1)) * sin(radians(latitude))
		)) <= $3
		ORDER BY created_at DESC
	`, bootcampColumns)

	rows, err := a.client.DB().QueryContext(ctx, query, center.Latitude, center.Longitude, radiusRadians)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search bootcamps within radius", err)
	}
	defer rows.Close()

	return collectBootcamps(rows)
}

func (a *BootcampAdapter) record(b *entities.Bootcamp) goqu.Record {
	return goqu.Record{
		"id":                b.ID,
		"owner_id":          b.OwnerID,
		"name":              b.Name,
		"slug":              b.Slug,
		"description":       b.Description,
		"website":           sql.NullString{String: b.Website, Valid: b.Website != ""},
		"phone":             sql.NullString{String: b.Phone, Valid: b.Phone != ""},
		"email":             sql.NullString{String: b.Email, Valid: b.Email != ""},
		"address":           sql.NullString{String: b.Address, Valid: b.Address != ""},
		"longitude":         b.Location.Longitude,
		"latitude":          b.Location.Latitude,
		"formatted_address": sql.NullString{String: b.Location.FormattedAddress, Valid: b.Location.FormattedAddress != ""},
		"city":              sql.NullString{String: b.Location.City, Valid: b.Location.City != ""},
		"zipcode":           sql.NullString{String: b.Location.Zipcode, Valid: b.Location.Zipcode != ""},
		"careers":           pq.Array(b.Careers),
		"average_cost":      b.AverageCost,
		"photo":             sql.NullString{String: b.Photo, Valid: b.Photo != ""},
		"housing":           b.Housing,
		"created_at":        b.CreatedAt,
		"updated_at":        b.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBootcamp(row rowScanner) (*entities.Bootcamp, error) {
	b := &entities.Bootcamp{}
	var website, phone, email, address, formatted, city, zipcode sql.NullString
	var careers pq.StringArray

	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.Name,
		&b.Slug,
		&b.Description,
		&website,
		&phone,
		&email,
		&address,
		&b.Location.Longitude,
		&b.Location.Latitude,
		&formatted,
		&city,
		&zipcode,
		&careers,
		&b.AverageCost,
		&sqlNullInto{&b.Photo},
		&b.Housing,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Website = website.String
	b.Phone = phone.String
	b.Email = email.String
	b.Address = address.String
	b.Location.FormattedAddress = formatted.String
	b.Location.City = city.String
	b.Location.Zipcode = zipcode.String
	b.Careers = []string(careers)

	return b, nil
}

func collectBootcamps(rows *sql.Rows) ([]*entities.Bootcamp, error) {
	bootcamps := []*entities.Bootcamp{}
	for rows.Next() {
		bootcamp, err := scanBootcamp(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan bootcamp", err)
		}
		bootcamps = append(bootcamps, bootcamp)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating bootcamps", err)
	}

	return bootcamps, nil
}

// requireRow maps a zero-row mutation to NotFound so deletes and updates stay
// idempotence-safe from the caller's perspective.
func requireRow(result sql.Result, message string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(message)
	}
	return nil
}

// sqlNullInto scans a nullable text column into a plain string.
type sqlNullInto struct {
	dst *string
}

func (s *sqlNullInto) Scan(value interface{}) error {
	var ns sql.NullString
	if err := ns.Scan(value); err != nil {
		return err
	}
	*s.dst = ns.String
	return nil
}
