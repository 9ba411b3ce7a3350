package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"travelgo/internal/domain"
)

func TestTravelerGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := TravelerRepository{DB: db}

	mock.ExpectQuery("FROM travelers").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"traveler_id"}))

	_, _, err = repo.GetByEmail("ghost@example.com")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTravelerGetByEmailReturnsHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := TravelerRepository{DB: db}

	rows := sqlmock.NewRows([]string{
		"traveler_id", "email", "password_hash", "name", "contact", "is_active", "last_login", "created_at",
	}).AddRow("trv-1", "nimal@example.com", "$2a$10$hash", "Nimal Perera", "+94771234567", false, nil, time.Now())

	mock.ExpectQuery("FROM travelers").
		WithArgs("nimal@example.com").
		WillReturnRows(rows)

	traveler, hash, err := repo.GetByEmail("nimal@example.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if hash != "$2a$10$hash" {
		t.Fatalf("unexpected hash %q", hash)
	}
	if traveler.IsActive {
		t.Fatalf("expected inactive traveler")
	}
}

func TestTravelerCreateDefaultsInactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := TravelerRepository{DB: db}

	mock.ExpectExec("INSERT INTO travelers").
		WithArgs(sqlmock.AnyArg(), "nimal@example.com", "$2a$10$hash", "Nimal Perera", "+94771234567", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.Create("nimal@example.com", "$2a$10$hash", "Nimal Perera", "+94771234567", false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("Create returned empty id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTravelerDeleteMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := TravelerRepository{DB: db}

	mock.ExpectExec("DELETE FROM travelers").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete("missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
