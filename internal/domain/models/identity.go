package models

import "time"

// Roles carried in JWT claims.
const (
	RoleAdmin    = "admin"
	RoleTraveler = "traveler"
)

// Admin is a back-office user.
type Admin struct {
	AdminID   string     `json:"admin_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

// Traveler is an end customer. Auto-provisioned travelers start with
// IsActive=false until their first booking is confirmed.
type Traveler struct {
	TravelerID string     `json:"traveler_id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Contact    string     `json:"contact"`
	IsActive   bool       `json:"is_active"`
	LastLogin  *time.Time `json:"last_login"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Agent refers bookings and earns commission on them.
type Agent struct {
	AgentID        string    `json:"agent_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Contact        string    `json:"contact"`
	CommissionRate float64   `json:"commission_rate"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// AgentStats joins an agent with its booking aggregates.
type AgentStats struct {
	Agent

	TotalBookings     int     `json:"total_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	TotalSales        float64 `json:"total_sales"`
}
