package models

import "time"

// Booking statuses. Temporary is the initial state set at public
// submission; confirmed is reachable only through the confirm flow.
const (
	BookingTemporary  = "temporary"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPartial  = "partial"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// ValidBookingStatus reports whether s belongs to the booking enum.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingTemporary, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s belongs to the payment enum.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// TerminalBookingStatus reports whether no further transitions are
// allowed from s.
func TerminalBookingStatus(s string) bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Booking is the bare bookings row. TravelerID and PackageID are
// immutable after creation.
type Booking struct {
	BookingID        string     `json:"booking_id"`
	PackageID        string     `json:"package_id"`
	TravelerID       string     `json:"traveler_id"`
	AgentID          string     `json:"agent_id,omitempty"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	NoOfTravelers    int        `json:"no_of_travelers"`
	StartDate        string     `json:"start_date,omitempty"`
	EndDate          string     `json:"end_date,omitempty"`
	TotalAmount      *float64   `json:"total_amount"`
	BookingDate      time.Time  `json:"booking_date"`
	ConfirmationDate *time.Time `json:"confirmation_date"`
	ConfirmedBy      string     `json:"confirmed_by,omitempty"`
	AdminNotes       string     `json:"admin_notes,omitempty"`
	TravelerNotes    string     `json:"traveler_notes,omitempty"`
}

// BookingDetail is the fully joined booking row returned by detail
// endpoints: package, traveler, agent and confirming admin context.
type BookingDetail struct {
	Booking

	PackageTitle    string `json:"package_title"`
	PackageDays     int    `json:"package_days"`
	TravelerName    string `json:"traveler_name"`
	TravelerEmail   string `json:"traveler_email"`
	TravelerContact string `json:"traveler_contact"`
	AgentName       string `json:"agent_name,omitempty"`
	AgentEmail      string `json:"agent_email,omitempty"`
	ConfirmedByName string `json:"confirmed_by_name,omitempty"`
}

// BookingSummary is the lighter list row.
type BookingSummary struct {
	BookingID        string     `json:"booking_id"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	NoOfTravelers    int        `json:"no_of_travelers"`
	StartDate        string     `json:"start_date,omitempty"`
	EndDate          string     `json:"end_date,omitempty"`
	TotalAmount      *float64   `json:"total_amount"`
	BookingDate      time.Time  `json:"booking_date"`
	ConfirmationDate *time.Time `json:"confirmation_date"`
	PackageTitle     string     `json:"package_title"`
	TravelerName     string     `json:"traveler_name"`
	TravelerEmail    string     `json:"traveler_email"`
	AgentName        string     `json:"agent_name,omitempty"`
}

// BookingStats aggregates counters for the admin dashboard.
type BookingStats struct {
	TotalBookings     int     `json:"total_bookings"`
	TemporaryBookings int     `json:"temporary_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	PaidRevenue       float64 `json:"paid_revenue"`
}

// BookingUpdate supports PUT-style partial updates via pointer
// presence. Traveler and package references are deliberately absent.
type BookingUpdate struct {
	Status        *string  `json:"status"`
	NoOfTravelers *int     `json:"no_of_travelers"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	TotalAmount   *float64 `json:"total_amount"`
	PaymentStatus *string  `json:"payment_status"`
	AgentID       *string  `json:"agent_id"`
	AdminNotes    *string  `json:"admin_notes"`
	TravelerNotes *string  `json:"traveler_notes"`
}

// BookingFilter narrows list queries.
type BookingFilter struct {
	Status        string
	PaymentStatus string
	TravelerID    string
	AgentID       string
	PackageID     string
	Search        string
	Limit         int
	Offset        int
}
