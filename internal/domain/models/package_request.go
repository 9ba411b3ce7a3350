package models

import "time"

// Package request statuses: pending -> reviewing -> approved/rejected.
const (
	RequestPending   = "pending"
	RequestReviewing = "reviewing"
	RequestApproved  = "approved"
	RequestRejected  = "rejected"
)

// ValidRequestStatus reports whether s belongs to the request enum.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestPending, RequestReviewing, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// PackageRequest is a traveler's custom package inquiry.
type PackageRequest struct {
	RequestID           string    `json:"request_id"`
	TravelerID          string    `json:"traveler_id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	NoOfDays            int       `json:"no_of_days"`
	NoOfTravelers       int       `json:"no_of_travelers"`
	PreferredStartDate  string    `json:"preferred_start_date,omitempty"`
	BudgetRange         string    `json:"budget_range,omitempty"`
	SpecialRequirements string    `json:"special_requirements,omitempty"`
	Status              string    `json:"status"`
	AdminNotes          string    `json:"admin_notes,omitempty"`
	PackageID           string    `json:"package_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// PackageRequestDetail joins the requesting traveler.
type PackageRequestDetail struct {
	PackageRequest

	TravelerName  string `json:"traveler_name"`
	TravelerEmail string `json:"traveler_email"`
}

// PackageRequestStats aggregates counters per status.
type PackageRequestStats struct {
	TotalRequests     int `json:"total_requests"`
	PendingRequests   int `json:"pending_requests"`
	ReviewingRequests int `json:"reviewing_requests"`
	ApprovedRequests  int `json:"approved_requests"`
	RejectedRequests  int `json:"rejected_requests"`
}
