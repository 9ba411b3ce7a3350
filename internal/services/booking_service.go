package services

import (
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
	"travelgo/internal/mailer"
	"travelgo/internal/repositories"
	"travelgo/internal/utils"
)

// BookingService orchestrates the booking lifecycle: public
// submission with traveler auto-provisioning, admin confirmation with
// account activation, cancellation and status corrections.
type BookingService struct {
	Bookings  repositories.BookingRepository
	Travelers repositories.TravelerRepository
	Packages  repositories.PackageRepository

	Mail        mailer.Sender
	FrontendURL string
	RequestID   string
}

// SubmitInput is the public submission payload after HTTP validation.
type SubmitInput struct {
	PackageID       string
	TravelerName    string
	TravelerEmail   string
	TravelerContact string
	NoOfTravelers   int
	StartDate       string
	EndDate         string
	AgentID         string
	TravelerNotes   string
}

// SubmitResult carries the joined booking plus provisioning outcome.
// GeneratedPassword is set only for new accounts and only here; it is
// never persisted in plaintext and never shown again.
type SubmitResult struct {
	Booking           models.BookingDetail
	IsNewAccount      bool
	GeneratedPassword string
}

// Submit validates package eligibility, resolves the traveler and
// creates the booking in its initial temporary state. The traveler
// row always exists before the booking insert so no orphan booking
// can be created.
func (s BookingService) Submit(in SubmitInput) (SubmitResult, error) {
	pkg, err := s.Packages.GetByID(in.PackageID)
	if err != nil {
		return SubmitResult{}, err
	}
	if pkg.Status != models.PackagePublished {
		return SubmitResult{}, domain.ValidationError{Field: "package_id", Msg: "package is not available for booking"}
	}

	travelerID, isNew, generated, err := s.resolveTraveler(in.TravelerEmail, in.TravelerName, in.TravelerContact)
	if err != nil {
		return SubmitResult{}, err
	}

	bookingID, err := s.Bookings.Create(repositories.NewBooking{
		PackageID:     in.PackageID,
		TravelerID:    travelerID,
		AgentID:       in.AgentID,
		NoOfTravelers: in.NoOfTravelers,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		TravelerNotes: in.TravelerNotes,
	})
	if err != nil {
		return SubmitResult{}, err
	}

	booking, err := s.Bookings.GetDetail(bookingID)
	if err != nil {
		return SubmitResult{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "submit",
		fmt.Sprintf("booking_id=%s package_id=%s new_account=%t", bookingID, in.PackageID, isNew))

	return SubmitResult{Booking: booking, IsNewAccount: isNew, GeneratedPassword: generated}, nil
}

// resolveTraveler returns the id of the traveler with the given email,
// creating an inactive account with a generated password when none
// exists. Existing traveler rows are never modified here.
func (s BookingService) resolveTraveler(email, name, contact string) (travelerID string, isNew bool, generated string, err error) {
	email = strings.TrimSpace(email)

	existing, _, err := s.Travelers.GetByEmail(email)
	if err == nil {
		return existing.TravelerID, false, "", nil
	}
	if !domain.IsNotFound(err) {
		return "", false, "", err
	}

	generated, err = utils.GenerateRandomPassword(utils.DefaultPasswordLength)
	if err != nil {
		return "", false, "", domain.InternalError{Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(generated), bcrypt.DefaultCost)
	if err != nil {
		return "", false, "", domain.InternalError{Err: err}
	}

	travelerID, err = s.Travelers.Create(email, string(hash), name, contact, false)
	if err != nil {
		return "", false, "", err
	}
	return travelerID, true, generated, nil
}

// Confirm finalizes a booking: conditional status transition, traveler
// activation and a best-effort confirmation email. The email step is
// isolated on purpose; once the status update commits the booking
// stays confirmed no matter what the mail provider does.
func (s BookingService) Confirm(bookingID, adminID string) (models.BookingDetail, error) {
	booking, err := s.Bookings.GetDetail(bookingID)
	if err != nil {
		return models.BookingDetail{}, err
	}

	won, err := s.Bookings.Confirm(bookingID, adminID)
	if err != nil {
		return models.BookingDetail{}, err
	}
	if !won {
		// The conditional update lost: someone else confirmed first,
		// or the booking was already confirmed when we read it.
		return models.BookingDetail{}, domain.ConflictError{Resource: "booking", Msg: "already confirmed"}
	}

	if err := s.Travelers.Activate(booking.TravelerID); err != nil {
		return models.BookingDetail{}, err
	}

	confirmed, err := s.Bookings.GetDetail(bookingID)
	if err != nil {
		return models.BookingDetail{}, err
	}

	s.notifyConfirmation(confirmed)

	utils.LogEvent(s.RequestID, "booking", "confirm",
		fmt.Sprintf("booking_id=%s confirmed_by=%s", bookingID, adminID))
	return confirmed, nil
}

func (s BookingService) notifyConfirmation(booking models.BookingDetail) {
	if s.Mail == nil {
		return
	}
	subject, body := mailer.BookingConfirmationMail(booking, s.FrontendURL)
	if err := s.Mail.Send(booking.TravelerName, booking.TravelerEmail, subject, body); err != nil {
		// Advisory only. The confirmation is the durable fact.
		log.Printf("booking %s: confirmation email failed: %v", booking.BookingID, err)
	}
}

// Cancel moves a booking to cancelled. Terminal bookings (completed or
// already cancelled) are rejected with a conflict.
func (s BookingService) Cancel(bookingID string) (models.BookingDetail, error) {
	booking, err := s.Bookings.GetDetail(bookingID)
	if err != nil {
		return models.BookingDetail{}, err
	}

	won, err := s.Bookings.Cancel(bookingID)
	if err != nil {
		return models.BookingDetail{}, err
	}
	if !won {
		return models.BookingDetail{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot cancel a %s booking", booking.Status),
		}
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", "booking_id="+bookingID)
	return s.Bookings.GetDetail(bookingID)
}

// UpdateStatus applies an administrative status correction. The
// confirmed state is not reachable here: it carries side effects that
// must fire together, so it is reserved for Confirm.
func (s BookingService) UpdateStatus(bookingID, status string) (models.BookingDetail, error) {
	if !models.ValidBookingStatus(status) {
		return models.BookingDetail{}, domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}
	if status == models.BookingConfirmed {
		return models.BookingDetail{}, domain.ValidationError{Field: "status", Msg: "use the confirm endpoint to confirm a booking"}
	}

	if _, err := s.Bookings.GetDetail(bookingID); err != nil {
		return models.BookingDetail{}, err
	}
	if err := s.Bookings.UpdateStatus(bookingID, status); err != nil {
		return models.BookingDetail{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "update_status",
		fmt.Sprintf("booking_id=%s status=%s", bookingID, status))
	return s.Bookings.GetDetail(bookingID)
}

// Update applies an admin partial update to mutable fields.
func (s BookingService) Update(bookingID string, u models.BookingUpdate) (models.BookingDetail, error) {
	if u.Status != nil && !models.ValidBookingStatus(*u.Status) {
		return models.BookingDetail{}, domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}
	if u.Status != nil && *u.Status == models.BookingConfirmed {
		return models.BookingDetail{}, domain.ValidationError{Field: "status", Msg: "use the confirm endpoint to confirm a booking"}
	}
	if u.PaymentStatus != nil && !models.ValidPaymentStatus(*u.PaymentStatus) {
		return models.BookingDetail{}, domain.ValidationError{Field: "payment_status", Msg: "unknown payment status"}
	}
	if u.NoOfTravelers != nil && *u.NoOfTravelers < 1 {
		return models.BookingDetail{}, domain.ValidationError{Field: "no_of_travelers", Msg: "must be at least 1"}
	}
	if u.TotalAmount != nil && *u.TotalAmount < 0 {
		return models.BookingDetail{}, domain.ValidationError{Field: "total_amount", Msg: "must not be negative"}
	}

	if _, err := s.Bookings.GetDetail(bookingID); err != nil {
		return models.BookingDetail{}, err
	}
	if err := s.Bookings.Update(bookingID, u); err != nil {
		return models.BookingDetail{}, err
	}
	return s.Bookings.GetDetail(bookingID)
}
