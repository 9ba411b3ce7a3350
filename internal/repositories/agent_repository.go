package repositories

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"travelgo/internal/db"
	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
)

type AgentRepository struct {
	DB *sql.DB
}

func (r AgentRepository) GetByID(agentID string) (models.Agent, error) {
	row := r.DB.QueryRow(`
		SELECT agent_id, email, name, COALESCE(contact,''), COALESCE(commission_rate, 0), is_active, created_at
		FROM agents
		WHERE agent_id = ?
	`, agentID)
	return scanAgent(row)
}

func (r AgentRepository) List() ([]models.Agent, error) {
	rows, err := r.DB.Query(`
		SELECT agent_id, email, name, COALESCE(contact,''), COALESCE(commission_rate, 0), is_active, created_at
		FROM agents
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Agent{}
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetStats joins the agent with booking aggregates: referral volume
// and confirmed sales value.
func (r AgentRepository) GetStats(agentID string) (models.AgentStats, error) {
	agent, err := r.GetByID(agentID)
	if err != nil {
		return models.AgentStats{}, err
	}

	var (
		s          models.AgentStats
		totalSales sql.NullFloat64
	)
	err = r.DB.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'confirmed' THEN 1 ELSE 0 END), 0),
			SUM(CASE WHEN status IN ('confirmed','in_progress','completed') THEN total_amount ELSE 0 END)
		FROM bookings
		WHERE agent_id = ?
	`, agentID).Scan(&s.TotalBookings, &s.ConfirmedBookings, &totalSales)
	if err != nil {
		return models.AgentStats{}, domain.InternalError{Err: err}
	}

	s.Agent = agent
	if totalSales.Valid {
		s.TotalSales = totalSales.Float64
	}
	return s, nil
}

type NewAgent struct {
	Email          string
	Name           string
	Contact        string
	CommissionRate *float64
}

func (r AgentRepository) Create(na NewAgent) (string, error) {
	agentID := uuid.NewString()
	_, err := r.DB.Exec(`
		INSERT INTO agents (agent_id, email, name, contact, commission_rate, is_active)
		VALUES (?, ?, ?, ?, ?, TRUE)
	`, agentID, na.Email, na.Name, db.NullIfEmpty(na.Contact), na.CommissionRate)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return agentID, nil
}

type AgentUpdate struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Contact        *string  `json:"contact"`
	CommissionRate *float64 `json:"commission_rate"`
	IsActive       *bool    `json:"is_active"`
}

func (r AgentRepository) Update(agentID string, u AgentUpdate) error {
	sets := []string{}
	args := []any{}
	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *u.Email)
	}
	if u.Contact != nil {
		sets = append(sets, "contact = ?")
		args = append(args, *u.Contact)
	}
	if u.CommissionRate != nil {
		sets = append(sets, "commission_rate = ?")
		args = append(args, *u.CommissionRate)
	}
	if u.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *u.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, agentID)
	_, err := r.DB.Exec(`UPDATE agents SET `+joinSets(sets)+` WHERE agent_id = ?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r AgentRepository) Delete(agentID string) error {
	res, err := r.DB.Exec(`DELETE FROM agents WHERE agent_id = ?`, agentID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "agent"}
	}
	return nil
}

func scanAgent(row interface{ Scan(...any) error }) (models.Agent, error) {
	var a models.Agent
	err := row.Scan(&a.AgentID, &a.Email, &a.Name, &a.Contact, &a.CommissionRate, &a.IsActive, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Agent{}, domain.NotFoundError{Resource: "agent", Err: err}
		}
		return models.Agent{}, domain.InternalError{Err: err}
	}
	return a, nil
}
