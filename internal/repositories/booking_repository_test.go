package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
)

func newMockRepo(t *testing.T) (BookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return BookingRepository{DB: db}, mock
}

func TestBookingCreateForcesInitialState(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), "pkg-1", "trv-1", nil, "temporary",
			2, "2026-10-01", "2026-10-05", nil, "pending", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.Create(NewBooking{
		PackageID:     "pkg-1",
		TravelerID:    "trv-1",
		NoOfTravelers: 2,
		StartDate:     "2026-10-01",
		EndDate:       "2026-10-05",
	})
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

func TestBookingConfirmConditionalUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WithArgs("confirmed", "adm-1", "bkg-1", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := repo.Confirm("bkg-1", "adm-1")
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if !won {
		t.Fatalf("expected Confirm to win")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingConfirmLosesWhenAlreadyConfirmed(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.Confirm("bkg-1", "adm-1")
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if won {
		t.Fatalf("expected Confirm to lose on zero affected rows")
	}
}

func TestBookingCancelSkipsTerminalStates(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WithArgs("cancelled", "bkg-1", "completed", "cancelled").
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.Cancel("bkg-1")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if won {
		t.Fatalf("expected Cancel to be refused")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingGetDetailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}))

	_, err := repo.GetDetail("missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookingListAppliesFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"booking_id", "status", "payment_status", "no_of_travelers",
		"start_date", "end_date", "total_amount", "booking_date", "confirmation_date",
		"title", "name", "email", "agent_name",
	}).AddRow("bkg-1", "confirmed", "paid", 2,
		"2026-10-01", "2026-10-05", 1450.0, time.Now(), time.Now(),
		"Hill Country Escape", "Nimal Perera", "nimal@example.com", nil)

	mock.ExpectQuery("FROM bookings").
		WithArgs("confirmed", 10, 0).
		WillReturnRows(rows)

	out, err := repo.List(models.BookingFilter{Status: "confirmed", Limit: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 1 || out[0].BookingID != "bkg-1" {
		t.Fatalf("unexpected result %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingStatsZeroRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{
			"total", "temporary", "confirmed", "completed", "cancelled", "total_revenue", "paid_revenue",
		}).AddRow(0, 0, 0, 0, 0, nil, nil))

	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalBookings != 0 || stats.TotalRevenue != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
