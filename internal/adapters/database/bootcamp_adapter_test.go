package database

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/geo"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
	"github.com/devtrails/bootcamp-directory/internal/infrastructure/clients/postgres"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

var bootcampRowColumns = []string{
	"id", "owner_id", "name", "slug", "description", "website", "phone", "email", "address",
	"longitude", "latitude", "formatted_address", "city", "zipcode",
	"careers", "average_cost", "photo", "housing", "created_at", "updated_at",
}

func bootcampRow(id string) []driverValue {
	now := time.Now().UTC()
	return []driverValue{
		id, "owner1", "Devworks", "devworks", "A bootcamp", "https://devworks.io", nil, nil, "233 Bay State Rd",
		-80.19, 25.76, "233 Bay State Rd, Miami FL", "Miami", "33125",
		`{"Web Development","UI/UX"}`, 10000.0, "photo_" + id + ".png", true, now, now,
	}
}

type driverValue = driver.Value

func newMockAdapter(t *testing.T) (*BootcampAdapter, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	adapter := NewBootcampAdapter(postgres.NewClientFromDB(db)).(*BootcampAdapter)
	return adapter, mock
}

func TestBootcampAdapter_Create(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(`INSERT INTO "bootcamps"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	now := time.Now().UTC()
	err := adapter.Create(context.Background(), &entities.Bootcamp{
		ID: "bc1", OwnerID: "owner1", Name: "O'Brien's Bootcamp", Slug: "o-brien-s-bootcamp",
		Description: "d", Careers: []string{"Web Development"}, Housing: true,
		CreatedAt: now, UpdatedAt: now,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootcampAdapter_GetByID(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	rows := sqlmock.NewRows(bootcampRowColumns).AddRow(bootcampRow("bc1")...)
	mock.ExpectQuery(`SELECT .+ FROM bootcamps WHERE id = \$1`).
		WithArgs("bc1").
		WillReturnRows(rows)

	bootcamp, err := adapter.GetByID(context.Background(), "bc1")

	require.NoError(t, err)
	assert.Equal(t, "bc1", bootcamp.ID)
	assert.Equal(t, "Devworks", bootcamp.Name)
	assert.Equal(t, []string{"Web Development", "UI/UX"}, bootcamp.Careers)
	assert.Equal(t, "", bootcamp.Phone, "null columns scan to empty strings")
	assert.Equal(t, 25.76, bootcamp.Location.Latitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootcampAdapter_GetByID_NotFound(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM bootcamps WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(bootcampRowColumns))

	_, err := adapter.GetByID(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestBootcampAdapter_FindByOwner_NoneIsNotAnError(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM bootcamps WHERE owner_id = \$1 LIMIT 1`).
		WithArgs("owner1").
		WillReturnRows(sqlmock.NewRows(bootcampRowColumns))

	bootcamp, err := adapter.FindByOwner(context.Background(), "owner1")

	require.NoError(t, err)
	assert.Nil(t, bootcamp)
}

func TestBootcampAdapter_Delete_ZeroRowsMeansNotFound(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(`DELETE FROM "bootcamps" WHERE \("id" = 'ghost'\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Delete(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestBootcampAdapter_UpdatePhoto(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(`UPDATE "bootcamps" SET "photo"=.+"updated_at"=.+WHERE \("id" = 'bc1'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.UpdatePhoto(context.Background(), "bc1", "photo_bc1.png")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootcampAdapter_FindWithin(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	rows := sqlmock.NewRows(bootcampRowColumns).AddRow(bootcampRow("bc1")...)
	mock.ExpectQuery(`WHERE acos\(least\(1\.0,`).
		WithArgs(25.76, -80.19, 10.0/geo.EarthRadiusMiles).
		WillReturnRows(rows)

	center := geo.Point{Longitude: -80.19, Latitude: 25.76}
	bootcamps, err := adapter.FindWithin(context.Background(), center, geo.AngularRadius(10))

	require.NoError(t, err)
	require.Len(t, bootcamps, 1)
	assert.Equal(t, "bc1", bootcamps[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootcampAdapter_List_CareerFilter(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	rows := sqlmock.NewRows(bootcampRowColumns).AddRow(bootcampRow("bc1")...)
	mock.ExpectQuery(`WHERE 1=1 AND \$1 = ANY\(careers\)`).
		WithArgs("Web Development").
		WillReturnRows(rows)

	bootcamps, err := adapter.List(context.Background(), repositories.BootcampFilter{Career: "Web Development"})

	require.NoError(t, err)
	require.Len(t, bootcamps, 1)
	assert.Contains(t, bootcamps[0].Careers, "Web Development")
}
