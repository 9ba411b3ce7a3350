package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
	"travelgo/internal/repositories"
	"travelgo/internal/utils"
)

type sentMail struct {
	ToName  string
	ToEmail string
	Subject string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(toName, toEmail, subject, htmlContent string) error {
	f.sent = append(f.sent, sentMail{ToName: toName, ToEmail: toEmail, Subject: subject})
	return f.err
}

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, *fakeSender) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sender := &fakeSender{}
	svc := BookingService{
		Bookings:    repositories.BookingRepository{DB: db},
		Travelers:   repositories.TravelerRepository{DB: db},
		Packages:    repositories.PackageRepository{DB: db},
		Mail:        sender,
		FrontendURL: "http://localhost:5173",
	}
	return svc, mock, sender
}

func packageRow(status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"package_id", "title", "description", "no_of_days", "is_template",
		"status", "is_active", "base_price", "created_by", "created_at", "updated_at", "name",
	}).AddRow("pkg-1", "Hill Country Escape", "", 5, false, status, true, 1200.0, nil, now, now, nil)
}

func bookingDetailRow(status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"booking_id", "package_id", "traveler_id", "agent_id",
		"status", "payment_status", "no_of_travelers",
		"start_date", "end_date", "total_amount", "booking_date",
		"confirmation_date", "confirmed_by", "admin_notes", "traveler_notes",
		"title", "no_of_days",
		"name", "email", "contact",
		"agent_name", "agent_email",
		"admin_name",
	}).AddRow(
		"bkg-1", "pkg-1", "trv-1", nil,
		status, "pending", 2,
		"2026-10-01", "2026-10-05", nil, now,
		nil, nil, nil, nil,
		"Hill Country Escape", 5,
		"Nimal Perera", "nimal@example.com", "+94771234567",
		nil, nil,
		nil,
	)
}

func travelerByEmailRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"traveler_id", "email", "password_hash", "name", "contact", "is_active", "last_login", "created_at",
	}).AddRow("trv-1", "nimal@example.com", "$2a$10$hash", "Nimal Perera", "+94771234567", true, nil, time.Now())
}

func TestSubmitCreatesInactiveTravelerAccount(t *testing.T) {
	svc, mock, sender := newBookingService(t)

	mock.ExpectQuery("FROM packages").WillReturnRows(packageRow("published"))
	mock.ExpectQuery("FROM travelers").
		WithArgs("nimal@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"traveler_id"}))
	mock.ExpectExec("INSERT INTO travelers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("temporary"))

	result, err := svc.Submit(SubmitInput{
		PackageID:     "pkg-1",
		TravelerName:  "Nimal Perera",
		TravelerEmail: "nimal@example.com",
		NoOfTravelers: 2,
	})
	require.NoError(t, err)

	assert.True(t, result.IsNewAccount)
	assert.Len(t, result.GeneratedPassword, utils.DefaultPasswordLength)
	assert.Equal(t, "temporary", result.Booking.Status)
	assert.Empty(t, sender.sent, "submission must not send mail")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReusesExistingTraveler(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectQuery("FROM packages").WillReturnRows(packageRow("published"))
	mock.ExpectQuery("FROM travelers").
		WithArgs("nimal@example.com").
		WillReturnRows(travelerByEmailRow())
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("temporary"))

	result, err := svc.Submit(SubmitInput{
		PackageID:     "pkg-1",
		TravelerName:  "Nimal Perera",
		TravelerEmail: "nimal@example.com",
		NoOfTravelers: 2,
	})
	require.NoError(t, err)

	assert.False(t, result.IsNewAccount)
	assert.Empty(t, result.GeneratedPassword)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRejectsUnpublishedPackage(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectQuery("FROM packages").WillReturnRows(packageRow("draft"))

	_, err := svc.Submit(SubmitInput{
		PackageID:     "pkg-1",
		TravelerName:  "Nimal Perera",
		TravelerEmail: "nimal@example.com",
		NoOfTravelers: 1,
	})
	assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmActivatesTravelerAndNotifies(t *testing.T) {
	svc, mock, sender := newBookingService(t)

	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("temporary"))
	mock.ExpectExec("UPDATE bookings").
		WithArgs("confirmed", "adm-1", "bkg-1", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE travelers").
		WithArgs("trv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("confirmed"))

	booking, err := svc.Confirm("bkg-1", "adm-1")
	require.NoError(t, err)

	assert.Equal(t, "confirmed", booking.Status)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "nimal@example.com", sender.sent[0].ToEmail)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmLoserGetsConflict(t *testing.T) {
	svc, mock, sender := newBookingService(t)

	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("confirmed"))
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.Confirm("bkg-1", "adm-1")
	assert.True(t, domain.IsConflict(err), "expected conflict, got %v", err)
	assert.Empty(t, sender.sent)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmSurvivesMailFailure(t *testing.T) {
	svc, mock, sender := newBookingService(t)
	sender.err = errors.New("smtp relay down")

	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("temporary"))
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE travelers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("confirmed"))

	booking, err := svc.Confirm("bkg-1", "adm-1")
	require.NoError(t, err, "mail failure must not fail confirmation")
	assert.Equal(t, "confirmed", booking.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelTerminalBookingConflicts(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("completed"))
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.Cancel("bkg-1")
	assert.True(t, domain.IsConflict(err), "expected conflict, got %v", err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelOpenBooking(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("temporary"))
	mock.ExpectExec("UPDATE bookings").
		WithArgs("cancelled", "bkg-1", "completed", "cancelled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingDetailRow("cancelled"))

	booking, err := svc.Cancel("bkg-1")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", booking.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusRejectsConfirmedTarget(t *testing.T) {
	svc := BookingService{}

	_, err := svc.UpdateStatus("bkg-1", "confirmed")
	assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)

	_, err = svc.UpdateStatus("bkg-1", "bogus")
	assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
}

func TestUpdateRejectsConfirmedStatus(t *testing.T) {
	svc := BookingService{}
	status := "confirmed"

	// the partial-update path must not set confirmed without the
	// activation and notification side effects of Confirm
	_, err := svc.Update("bkg-1", models.BookingUpdate{Status: &status})
	assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
}
