package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
	"travelgo/internal/repositories"
	"travelgo/internal/utils"
)

// VoucherService renders the downloadable booking voucher PDF.
// Vouchers exist only for confirmed (or later) bookings.
type VoucherService struct {
	Bookings  repositories.BookingRepository
	Requests  repositories.PackageRequestRepository
	RequestID string

	// Loader overrides the repository lookup in tests.
	Loader func(string) (models.BookingDetail, error)
}

func (s VoucherService) GenerateVoucher(bookingID string) ([]byte, string, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	if booking.Status == models.BookingTemporary || booking.Status == models.BookingCancelled {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "voucher is only available for confirmed bookings"}
	}

	utils.LogEvent(s.RequestID, "voucher", "generate", "booking_id="+bookingID)
	return buildVoucherPDF(booking)
}

func (s VoucherService) loadBooking(bookingID string) (models.BookingDetail, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.Bookings.GetDetail(bookingID)
}

// GenerateRequestSummary renders a printable summary of a custom
// package inquiry for the review meeting.
func (s VoucherService) GenerateRequestSummary(requestID string) ([]byte, string, error) {
	req, err := s.Requests.GetDetail(requestID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "voucher", "request_summary", "request_id="+requestID)
	return buildRequestSummaryPDF(req)
}

func buildRequestSummaryPDF(r models.PackageRequestDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Package Request Summary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PACKAGE REQUEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Request ID     : %s", r.RequestID),
		fmt.Sprintf("Requested by   : %s (%s)", orDash(r.TravelerName), orDash(r.TravelerEmail)),
		fmt.Sprintf("Title          : %s", orDash(r.Title)),
		fmt.Sprintf("Duration       : %d days", r.NoOfDays),
		fmt.Sprintf("Travelers      : %d", r.NoOfTravelers),
		fmt.Sprintf("Preferred date : %s", orDash(r.PreferredStartDate)),
		fmt.Sprintf("Budget         : %s", orDash(r.BudgetRange)),
		fmt.Sprintf("Status         : %s", r.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if r.Description != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Description")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, r.Description, "", "", false)
	}
	if r.SpecialRequirements != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Special requirements")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, r.SpecialRequirements, "", "", false)
	}
	if r.AdminNotes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Review notes")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, r.AdminNotes, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	filename := fmt.Sprintf("REQUEST_%s.pdf", voucherRef(r.RequestID))
	return buf.Bytes(), filename, nil
}

func buildVoucherPDF(b models.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING VOUCHER")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Trust You Go - Your Sri Lanka Travel Partner")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Voucher No     : VCH-%s", voucherRef(b.BookingID)),
		fmt.Sprintf("Booking ID     : %s", b.BookingID),
		fmt.Sprintf("Issued         : %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Traveler       : %s", orDash(b.TravelerName)),
		fmt.Sprintf("Contact        : %s", orDash(b.TravelerContact)),
		fmt.Sprintf("Package        : %s (%d days)", orDash(b.PackageTitle), b.PackageDays),
		fmt.Sprintf("Travel dates   : %s to %s", orDash(b.StartDate), orDash(b.EndDate)),
		fmt.Sprintf("Travelers      : %d", b.NoOfTravelers),
		fmt.Sprintf("Status         : %s", b.Status),
		fmt.Sprintf("Payment        : %s", b.PaymentStatus),
	}
	if b.TotalAmount != nil {
		lines = append(lines, fmt.Sprintf("Total amount   : %s", formatUSD(*b.TotalAmount)))
	}
	if b.AgentName != "" {
		lines = append(lines, fmt.Sprintf("Your agent     : %s", b.AgentName))
	}
	if b.ConfirmationDate != nil {
		lines = append(lines, fmt.Sprintf("Confirmed on   : %s", b.ConfirmationDate.Format("2006-01-02")))
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this voucher at the start of your tour. Contact your agent for any changes to the itinerary.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	filename := fmt.Sprintf("VOUCHER_%s.pdf", voucherRef(b.BookingID))
	return buf.Bytes(), filename, nil
}

// voucherRef shortens the UUID to its first block for a readable
// reference number.
func voucherRef(bookingID string) string {
	if i := strings.IndexByte(bookingID, '-'); i > 0 {
		return strings.ToUpper(bookingID[:i])
	}
	return strings.ToUpper(bookingID)
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func formatUSD(v float64) string {
	return fmt.Sprintf("USD %.2f", v)
}
