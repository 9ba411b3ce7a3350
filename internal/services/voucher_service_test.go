package services

import (
	"strings"
	"testing"
	"time"

	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
)

func confirmedBookingDetail() models.BookingDetail {
	now := time.Now()
	amount := 1450.0
	d := models.BookingDetail{
		PackageTitle:    "Hill Country Escape",
		PackageDays:     5,
		TravelerName:    "Nimal Perera",
		TravelerEmail:   "nimal@example.com",
		TravelerContact: "+94771234567",
	}
	d.BookingID = "3f2c9a10-aaaa-bbbb-cccc-000000000001"
	d.Status = models.BookingConfirmed
	d.PaymentStatus = models.PaymentPaid
	d.NoOfTravelers = 2
	d.StartDate = "2026-10-01"
	d.EndDate = "2026-10-05"
	d.TotalAmount = &amount
	d.ConfirmationDate = &now
	return d
}

func TestGenerateVoucher(t *testing.T) {
	svc := VoucherService{
		Loader: func(id string) (models.BookingDetail, error) {
			return confirmedBookingDetail(), nil
		},
	}

	pdf, filename, err := svc.GenerateVoucher("3f2c9a10-aaaa-bbbb-cccc-000000000001")
	if err != nil {
		t.Fatalf("GenerateVoucher returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateVoucher returned empty data")
	}
	if !strings.HasPrefix(filename, "VOUCHER_3F2C9A10") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestGenerateVoucherRequiresConfirmedBooking(t *testing.T) {
	for _, status := range []string{models.BookingTemporary, models.BookingCancelled} {
		svc := VoucherService{
			Loader: func(id string) (models.BookingDetail, error) {
				d := confirmedBookingDetail()
				d.Status = status
				return d, nil
			},
		}

		_, _, err := svc.GenerateVoucher("bkg-1")
		if !domain.IsConflict(err) {
			t.Fatalf("status %s: expected conflict, got %v", status, err)
		}
	}
}
