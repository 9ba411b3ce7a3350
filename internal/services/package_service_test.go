package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
	"travelgo/internal/repositories"
)

func newPackageService(t *testing.T) (PackageService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return PackageService{
		Packages:  repositories.PackageRepository{DB: db},
		Locations: repositories.LocationRepository{DB: db},
	}, mock
}

func draftPackageRow(days int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"package_id", "title", "description", "no_of_days", "is_template",
		"status", "is_active", "base_price", "created_by", "created_at", "updated_at", "name",
	}).AddRow("pkg-1", "Hill Country Escape", "", days, false, "draft", true, nil, nil, now, now, nil)
}

func itineraryRows(days ...int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "day_number", "visit_order", "notes",
		"location_id", "name", "description", "location_type", "location_url", "image_url",
	})
	for i, day := range days {
		rows.AddRow(int64(i+1), day, i, "", "loc-1", "Ella Rock", "", "hike", "", "")
	}
	return rows
}

func TestPublishRequiresFullItinerary(t *testing.T) {
	svc, mock := newPackageService(t)

	mock.ExpectQuery("FROM packages").WillReturnRows(draftPackageRow(3))
	// only days 1 and 3 have stops
	mock.ExpectQuery("FROM package_locations").WillReturnRows(itineraryRows(1, 3))

	_, err := svc.Publish("pkg-1")
	assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
	assert.Contains(t, err.Error(), "day 2")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishCompleteItinerary(t *testing.T) {
	svc, mock := newPackageService(t)

	mock.ExpectQuery("FROM packages").WillReturnRows(draftPackageRow(2))
	mock.ExpectQuery("FROM package_locations").WillReturnRows(itineraryRows(1, 2))
	mock.ExpectExec("UPDATE packages").
		WithArgs("published", "pkg-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	published := sqlmock.NewRows([]string{
		"package_id", "title", "description", "no_of_days", "is_template",
		"status", "is_active", "base_price", "created_by", "created_at", "updated_at", "name",
	}).AddRow("pkg-1", "Hill Country Escape", "", 2, false, "published", true, nil, nil, time.Now(), time.Now(), nil)
	mock.ExpectQuery("FROM packages").WillReturnRows(published)

	pkg, err := svc.Publish("pkg-1")
	require.NoError(t, err)
	assert.Equal(t, "published", pkg.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRejectsDirectStatusChange(t *testing.T) {
	svc := PackageService{}
	status := "published"

	_, err := svc.Update("pkg-1", models.PackageUpdate{Status: &status})
	assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
}
