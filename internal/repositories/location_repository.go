package repositories

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"travelgo/internal/db"
	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
)

const locationColumns = `
	l.location_id, l.name, COALESCE(l.description,''), COALESCE(l.location_type,''), COALESCE(l.location_url,''),
	COALESCE((SELECT image_url FROM location_images WHERE location_id = l.location_id ORDER BY display_order ASC LIMIT 1),''),
	l.created_at`

type LocationRepository struct {
	DB *sql.DB
}

func (r LocationRepository) GetByID(locationID string) (models.Location, error) {
	row := r.DB.QueryRow(`SELECT `+locationColumns+` FROM locations l WHERE l.location_id = ?`, locationID)
	return scanLocation(row)
}

func (r LocationRepository) List(search, locationType string) ([]models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations l WHERE 1=1`
	args := []any{}
	if locationType != "" {
		query += ` AND l.location_type = ?`
		args = append(args, locationType)
	}
	if search != "" {
		query += ` AND (l.name LIKE ? OR l.description LIKE ?)`
		term := "%" + search + "%"
		args = append(args, term, term)
	}
	query += ` ORDER BY l.name ASC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type NewLocation struct {
	Name         string
	Description  string
	LocationType string
	LocationURL  string
}

func (r LocationRepository) Create(nl NewLocation) (string, error) {
	locationID := uuid.NewString()
	_, err := r.DB.Exec(`
		INSERT INTO locations (location_id, name, description, location_type, location_url)
		VALUES (?, ?, ?, ?, ?)
	`, locationID, nl.Name, db.NullIfEmpty(nl.Description), db.NullIfEmpty(nl.LocationType), db.NullIfEmpty(nl.LocationURL))
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return locationID, nil
}

type LocationUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	LocationType *string `json:"location_type"`
	LocationURL  *string `json:"location_url"`
}

func (r LocationRepository) Update(locationID string, u LocationUpdate) error {
	sets := []string{}
	args := []any{}
	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.LocationType != nil {
		sets = append(sets, "location_type = ?")
		args = append(args, *u.LocationType)
	}
	if u.LocationURL != nil {
		sets = append(sets, "location_url = ?")
		args = append(args, *u.LocationURL)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, locationID)
	_, err := r.DB.Exec(`UPDATE locations SET `+joinSets(sets)+` WHERE location_id = ?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r LocationRepository) Delete(locationID string) error {
	res, err := r.DB.Exec(`DELETE FROM locations WHERE location_id = ?`, locationID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "location"}
	}
	return nil
}

func scanLocation(row interface{ Scan(...any) error }) (models.Location, error) {
	var l models.Location
	err := row.Scan(&l.LocationID, &l.Name, &l.Description, &l.LocationType, &l.LocationURL, &l.ImageURL, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Location{}, domain.NotFoundError{Resource: "location", Err: err}
		}
		return models.Location{}, domain.InternalError{Err: err}
	}
	return l, nil
}
