package mailer

import (
	"fmt"
	"html"
	"strings"

	"travelgo/internal/domain/models"
)

const mailStyle = `body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #007bff; color: white; padding: 20px; text-align: center; }
.content { padding: 20px; background: #f9f9f9; }
.details { background: white; padding: 15px; margin: 15px 0; border-left: 4px solid #007bff; }
.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }`

func wrap(header, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><style>%s</style></head>
<body>
<div class="container">
<div class="header"><h1>%s</h1></div>
<div class="content">
%s
<p>Best regards,<br>Trust You Go Team</p>
</div>
<div class="footer"><p>Trust You Go - Your Sri Lanka Travel Partner</p></div>
</div>
</body>
</html>`, mailStyle, header, content)
}

// BookingConfirmationMail renders the email sent after an admin
// confirms a booking. Account credentials are never included; the
// generated password stays inside the submit flow.
func BookingConfirmationMail(b models.BookingDetail, frontendURL string) (subject, htmlContent string) {
	subject = "Booking Confirmed - " + b.PackageTitle

	var sb strings.Builder
	fmt.Fprintf(&sb, "<h2>Dear %s,</h2>\n", html.EscapeString(b.TravelerName))
	sb.WriteString("<p>Your booking has been confirmed. We're excited to help you explore Sri Lanka!</p>\n")
	sb.WriteString(`<div class="details"><h3>Booking Details</h3>` + "\n")
	fmt.Fprintf(&sb, "<p><strong>Package:</strong> %s</p>\n", html.EscapeString(b.PackageTitle))
	fmt.Fprintf(&sb, "<p><strong>Duration:</strong> %d days</p>\n", b.PackageDays)
	fmt.Fprintf(&sb, "<p><strong>Number of Travelers:</strong> %d</p>\n", b.NoOfTravelers)
	if b.StartDate != "" {
		fmt.Fprintf(&sb, "<p><strong>Start Date:</strong> %s</p>\n", html.EscapeString(b.StartDate))
	}
	if b.TotalAmount != nil {
		fmt.Fprintf(&sb, "<p><strong>Total Amount:</strong> LKR %.2f</p>\n", *b.TotalAmount)
	}
	fmt.Fprintf(&sb, "<p><strong>Booking ID:</strong> %s</p>\n", html.EscapeString(b.BookingID))
	sb.WriteString("</div>\n")

	if frontendURL != "" {
		fmt.Fprintf(&sb, `<p><a href="%s/login">View your booking</a></p>`+"\n", frontendURL)
	}
	sb.WriteString("<p>If you have any questions, please don't hesitate to contact us.</p>\n")
	return subject, wrap("Booking Confirmed!", sb.String())
}

// PackageRequestAckMail renders the acknowledgment sent right after a
// traveler files a custom package request.
func PackageRequestAckMail(r models.PackageRequestDetail) (subject, htmlContent string) {
	subject = "Package Request Received"

	var sb strings.Builder
	fmt.Fprintf(&sb, "<h2>Dear %s,</h2>\n", html.EscapeString(r.TravelerName))
	sb.WriteString("<p>Thank you for your custom package request. We have received your requirements and will review them shortly.</p>\n")
	sb.WriteString(`<div class="details"><h3>Your Request</h3>` + "\n")
	fmt.Fprintf(&sb, "<p><strong>Title:</strong> %s</p>\n", html.EscapeString(r.Title))
	fmt.Fprintf(&sb, "<p><strong>Duration:</strong> %d days</p>\n", r.NoOfDays)
	fmt.Fprintf(&sb, "<p><strong>Travelers:</strong> %d</p>\n", r.NoOfTravelers)
	if r.BudgetRange != "" {
		fmt.Fprintf(&sb, "<p><strong>Budget:</strong> %s</p>\n", html.EscapeString(r.BudgetRange))
	}
	sb.WriteString("</div>\n")
	sb.WriteString("<p>Our team will contact you within 24-48 hours with a customized package based on your requirements.</p>\n")
	return subject, wrap("Request Received", sb.String())
}

// PasswordChangedMail notifies a user that their password changed.
func PasswordChangedMail(name string) (subject, htmlContent string) {
	subject = "Password Changed Successfully"

	var sb strings.Builder
	fmt.Fprintf(&sb, "<h2>Dear %s,</h2>\n", html.EscapeString(name))
	sb.WriteString("<p>Your password has been changed successfully.</p>\n")
	sb.WriteString("<p>If you did not make this change, please contact us immediately.</p>\n")
	return subject, wrap("Password Changed", sb.String())
}
