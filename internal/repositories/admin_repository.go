package repositories

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"travelgo/internal/db"
	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) GetByID(adminID string) (models.Admin, error) {
	row := r.DB.QueryRow(`
		SELECT admin_id, email, name, is_active, last_login, created_at
		FROM admins
		WHERE admin_id = ?
	`, adminID)
	return scanAdmin(row)
}

// GetByEmail returns the admin plus password hash for login.
func (r AdminRepository) GetByEmail(email string) (models.Admin, string, error) {
	var (
		a         models.Admin
		hash      string
		lastLogin sql.NullTime
	)
	err := r.DB.QueryRow(`
		SELECT admin_id, email, password_hash, name, is_active, last_login, created_at
		FROM admins
		WHERE email = ?
	`, email).Scan(&a.AdminID, &a.Email, &hash, &a.Name, &a.IsActive, &lastLogin, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Admin{}, "", domain.NotFoundError{Resource: "admin", Err: err}
		}
		return models.Admin{}, "", domain.InternalError{Err: err}
	}
	a.LastLogin = db.NullTimePtr(lastLogin)
	return a, hash, nil
}

func (r AdminRepository) List() ([]models.Admin, error) {
	rows, err := r.DB.Query(`
		SELECT admin_id, email, name, is_active, last_login, created_at
		FROM admins
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AdminRepository) Create(email, passwordHash, name string) (string, error) {
	adminID := uuid.NewString()
	_, err := r.DB.Exec(`
		INSERT INTO admins (admin_id, email, password_hash, name, is_active)
		VALUES (?, ?, ?, ?, TRUE)
	`, adminID, email, passwordHash, name)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return adminID, nil
}

type AdminUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"is_active"`
}

func (r AdminRepository) Update(adminID string, u AdminUpdate) error {
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
	if u.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *u.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, adminID)
	_, err := r.DB.Exec(`UPDATE admins SET `+joinSets(sets)+` WHERE admin_id = ?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r AdminRepository) UpdatePassword(adminID, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE admins SET password_hash = ? WHERE admin_id = ?`, passwordHash, adminID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r AdminRepository) UpdateLastLogin(adminID string) error {
	_, err := r.DB.Exec(`UPDATE admins SET last_login = NOW() WHERE admin_id = ?`, adminID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r AdminRepository) Delete(adminID string) error {
	res, err := r.DB.Exec(`DELETE FROM admins WHERE admin_id = ?`, adminID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "admin"}
	}
	return nil
}

func scanAdmin(row interface{ Scan(...any) error }) (models.Admin, error) {
	var (
		a         models.Admin
		lastLogin sql.NullTime
	)
	err := row.Scan(&a.AdminID, &a.Email, &a.Name, &a.IsActive, &lastLogin, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Admin{}, domain.NotFoundError{Resource: "admin", Err: err}
		}
		return models.Admin{}, domain.InternalError{Err: err}
	}
	a.LastLogin = db.NullTimePtr(lastLogin)
	return a, nil
}
