package mailer

import (
	"strings"
	"testing"

	"travelgo/internal/domain/models"
)

func TestBookingConfirmationMailOmitsCredentials(t *testing.T) {
	b := models.BookingDetail{
		Booking: models.Booking{
			BookingID:     "bkg-1",
			NoOfTravelers: 2,
		},
		TravelerName:  "Nimal Perera",
		TravelerEmail: "nimal@example.com",
		PackageTitle:  "Hill Country Escape",
		PackageDays:   3,
	}

	subject, body := BookingConfirmationMail(b, "https://app.example.com")

	if !strings.Contains(subject, "Hill Country Escape") {
		t.Errorf("subject missing package title: %q", subject)
	}
	if strings.Contains(body, "Password") {
		t.Error("confirmation mail must not carry credentials")
	}
	if !strings.Contains(body, "https://app.example.com/login") {
		t.Error("expected login link in body")
	}
}

func TestBookingConfirmationMailEscapesHTML(t *testing.T) {
	b := models.BookingDetail{
		TravelerName: `<script>alert("x")</script>`,
		PackageTitle: "Tour & More",
	}

	_, body := BookingConfirmationMail(b, "")

	if strings.Contains(body, "<script>") {
		t.Error("traveler name not escaped")
	}
	if !strings.Contains(body, "Tour &amp; More") {
		t.Error("package title not escaped")
	}
}
