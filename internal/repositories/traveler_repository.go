package repositories

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"travelgo/internal/db"
	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
)

const travelerColumns = `traveler_id, email, name, COALESCE(contact,''), is_active, last_login, created_at`

type TravelerRepository struct {
	DB *sql.DB
}

func (r TravelerRepository) GetByID(travelerID string) (models.Traveler, error) {
	row := r.DB.QueryRow(`SELECT `+travelerColumns+` FROM travelers WHERE traveler_id = ?`, travelerID)
	return scanTraveler(row)
}

// GetByEmail returns the traveler plus password hash for login and
// duplicate-account checks. Lookup is effectively case-insensitive
// under the schema's unicode collation.
func (r TravelerRepository) GetByEmail(email string) (models.Traveler, string, error) {
	var (
		t         models.Traveler
		hash      string
		lastLogin sql.NullTime
	)
	err := r.DB.QueryRow(`
		SELECT traveler_id, email, password_hash, name, COALESCE(contact,''), is_active, last_login, created_at
		FROM travelers
		WHERE email = ?
	`, email).Scan(&t.TravelerID, &t.Email, &hash, &t.Name, &t.Contact, &t.IsActive, &lastLogin, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Traveler{}, "", domain.NotFoundError{Resource: "traveler", Err: err}
		}
		return models.Traveler{}, "", domain.InternalError{Err: err}
	}
	t.LastLogin = db.NullTimePtr(lastLogin)
	return t, hash, nil
}

type TravelerFilter struct {
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}

func (r TravelerRepository) List(f TravelerFilter) ([]models.Traveler, error) {
	query := `SELECT ` + travelerColumns + ` FROM travelers WHERE 1=1`
	args := []any{}

	if f.IsActive != nil {
		query += ` AND is_active = ?`
		args = append(args, *f.IsActive)
	}
	if f.Search != "" {
		query += ` AND (name LIKE ? OR email LIKE ?)`
		term := "%" + f.Search + "%"
		args = append(args, term, term)
	}
	query += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Traveler{}
	for rows.Next() {
		t, err := scanTraveler(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TravelerRepository) Count(f TravelerFilter) (int, error) {
	query := `SELECT COUNT(*) FROM travelers WHERE 1=1`
	args := []any{}
	if f.IsActive != nil {
		query += ` AND is_active = ?`
		args = append(args, *f.IsActive)
	}
	if f.Search != "" {
		query += ` AND (name LIKE ? OR email LIKE ?)`
		term := "%" + f.Search + "%"
		args = append(args, term, term)
	}

	var total int
	if err := r.DB.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return total, nil
}

// Create inserts a traveler and returns the generated id. The caller
// supplies an already-hashed password.
func (r TravelerRepository) Create(email, passwordHash, name, contact string, isActive bool) (string, error) {
	travelerID := uuid.NewString()
	_, err := r.DB.Exec(`
		INSERT INTO travelers (traveler_id, email, password_hash, name, contact, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, travelerID, email, passwordHash, name, db.NullIfEmpty(contact), isActive)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return travelerID, nil
}

type TravelerUpdate struct {
	Name     *string `json:"name"`
	Contact  *string `json:"contact"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"is_active"`
}

func (r TravelerRepository) Update(travelerID string, u TravelerUpdate) error {
	sets := []string{}
	args := []any{}
	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Contact != nil {
		sets = append(sets, "contact = ?")
		args = append(args, *u.Contact)
	}
	if u.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *u.Email)
	}
	if u.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *u.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, travelerID)
	_, err := r.DB.Exec(`UPDATE travelers SET `+joinSets(sets)+` WHERE traveler_id = ?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// Activate flips is_active to true. Fired on booking confirmation and
// by explicit admin action; activating an active traveler is a no-op.
func (r TravelerRepository) Activate(travelerID string) error {
	_, err := r.DB.Exec(`UPDATE travelers SET is_active = TRUE WHERE traveler_id = ?`, travelerID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r TravelerRepository) UpdatePassword(travelerID, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE travelers SET password_hash = ? WHERE traveler_id = ?`, passwordHash, travelerID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r TravelerRepository) UpdateLastLogin(travelerID string) error {
	_, err := r.DB.Exec(`UPDATE travelers SET last_login = NOW() WHERE traveler_id = ?`, travelerID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r TravelerRepository) Delete(travelerID string) error {
	res, err := r.DB.Exec(`DELETE FROM travelers WHERE traveler_id = ?`, travelerID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "traveler"}
	}
	return nil
}

func scanTraveler(row interface{ Scan(...any) error }) (models.Traveler, error) {
	var (
		t         models.Traveler
		lastLogin sql.NullTime
	)
	err := row.Scan(&t.TravelerID, &t.Email, &t.Name, &t.Contact, &t.IsActive, &lastLogin, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Traveler{}, domain.NotFoundError{Resource: "traveler", Err: err}
		}
		return models.Traveler{}, domain.InternalError{Err: err}
	}
	t.LastLogin = db.NullTimePtr(lastLogin)
	return t, nil
}
