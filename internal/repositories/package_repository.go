package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"travelgo/internal/db"
	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
)

const packageColumns = `
	p.package_id, p.title, COALESCE(p.description,''), p.no_of_days, p.is_template,
	p.status, p.is_active, p.base_price, p.created_by, p.created_at, p.updated_at,
	a.name`

type PackageRepository struct {
	DB *sql.DB
}

func (r PackageRepository) GetByID(packageID string) (models.Package, error) {
	row := r.DB.QueryRow(`
		SELECT `+packageColumns+`
		FROM packages p
		LEFT JOIN admins a ON p.created_by = a.admin_id
		WHERE p.package_id = ?
	`, packageID)
	return scanPackage(row)
}

// GetWithItinerary loads the package plus its day-by-day stops.
func (r PackageRepository) GetWithItinerary(packageID string) (models.PackageWithItinerary, error) {
	pkg, err := r.GetByID(packageID)
	if err != nil {
		return models.PackageWithItinerary{}, err
	}

	rows, err := r.DB.Query(`
		SELECT
			pl.id, pl.day_number, pl.visit_order, COALESCE(pl.notes,''),
			l.location_id, l.name, COALESCE(l.description,''), COALESCE(l.location_type,''), COALESCE(l.location_url,''),
			COALESCE((SELECT image_url FROM location_images WHERE location_id = l.location_id ORDER BY display_order ASC LIMIT 1),'')
		FROM package_locations pl
		INNER JOIN locations l ON pl.location_id = l.location_id
		WHERE pl.package_id = ?
		ORDER BY pl.day_number ASC, pl.visit_order ASC
	`, packageID)
	if err != nil {
		return models.PackageWithItinerary{}, domain.InternalError{Err: err}
	}
	defer rows.Close()

	itinerary := map[int][]models.ItineraryStop{}
	for rows.Next() {
		var (
			stop models.ItineraryStop
			day  int
		)
		if err := rows.Scan(
			&stop.ID, &day, &stop.VisitOrder, &stop.Notes,
			&stop.Location.LocationID, &stop.Location.Name, &stop.Location.Description,
			&stop.Location.LocationType, &stop.Location.LocationURL,
			&stop.Location.ImageURL,
		); err != nil {
			return models.PackageWithItinerary{}, domain.InternalError{Err: err}
		}
		itinerary[day] = append(itinerary[day], stop)
	}
	if err := rows.Err(); err != nil {
		return models.PackageWithItinerary{}, domain.InternalError{Err: err}
	}

	return models.PackageWithItinerary{Package: pkg, Itinerary: itinerary}, nil
}

func (r PackageRepository) List(f models.PackageFilter) ([]models.Package, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM packages p
		LEFT JOIN admins a ON p.created_by = a.admin_id
		WHERE 1=1`
	args := []any{}

	if f.Status != "" {
		query += ` AND p.status = ?`
		args = append(args, f.Status)
	}
	if f.IsActive != nil {
		query += ` AND p.is_active = ?`
		args = append(args, *f.IsActive)
	}
	if f.IsTemplate != nil {
		query += ` AND p.is_template = ?`
		args = append(args, *f.IsTemplate)
	}
	if f.Search != "" {
		query += ` AND (p.title LIKE ? OR p.description LIKE ?)`
		term := "%" + f.Search + "%"
		args = append(args, term, term)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type NewPackage struct {
	Title       string
	Description string
	NoOfDays    int
	IsTemplate  bool
	Status      string
	BasePrice   *float64
	CreatedBy   string
}

func (r PackageRepository) Create(np NewPackage) (string, error) {
	packageID := uuid.NewString()
	status := np.Status
	if status == "" {
		status = models.PackageDraft
	}

	var basePrice any
	if np.BasePrice != nil {
		basePrice = *np.BasePrice
	}

	_, err := r.DB.Exec(`
		INSERT INTO packages (package_id, title, description, no_of_days, is_template, status, base_price, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, packageID, np.Title, db.NullIfEmpty(np.Description), np.NoOfDays, np.IsTemplate, status, basePrice, db.NullIfEmpty(np.CreatedBy))
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return packageID, nil
}

func (r PackageRepository) Update(packageID string, u models.PackageUpdate) error {
	sets := []string{}
	args := []any{}
	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.NoOfDays != nil {
		sets = append(sets, "no_of_days = ?")
		args = append(args, *u.NoOfDays)
	}
	if u.IsTemplate != nil {
		sets = append(sets, "is_template = ?")
		args = append(args, *u.IsTemplate)
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *u.Status)
	}
	if u.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *u.IsActive)
	}
	if u.BasePrice != nil {
		sets = append(sets, "base_price = ?")
		args = append(args, *u.BasePrice)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, packageID)
	_, err := r.DB.Exec(`UPDATE packages SET `+joinSets(sets)+` WHERE package_id = ?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r PackageRepository) SetStatus(packageID, status string) error {
	_, err := r.DB.Exec(`UPDATE packages SET status = ? WHERE package_id = ?`, status, packageID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// Deactivate is the soft delete used by the admin surface; bookings
// keep their package reference.
func (r PackageRepository) Deactivate(packageID string) error {
	res, err := r.DB.Exec(`UPDATE packages SET is_active = FALSE WHERE package_id = ?`, packageID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "package"}
	}
	return nil
}

// ReplaceItinerary swaps the full stop list under one transaction so a
// partially written itinerary can never be observed.
func (r PackageRepository) ReplaceItinerary(ctx context.Context, packageID string, stops []models.ItineraryInput) error {
	return db.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM package_locations WHERE package_id = ?`, packageID); err != nil {
			return domain.InternalError{Err: err}
		}
		for _, stop := range stops {
			if _, err := tx.Exec(`
				INSERT INTO package_locations (package_id, location_id, day_number, visit_order, notes)
				VALUES (?, ?, ?, ?, ?)
			`, packageID, stop.LocationID, stop.DayNumber, stop.VisitOrder, db.NullIfEmpty(stop.Notes)); err != nil {
				return domain.InternalError{Err: err}
			}
		}
		return nil
	})
}

// Duplicate copies a package and its itinerary as a fresh draft.
func (r PackageRepository) Duplicate(ctx context.Context, packageID, title, createdBy string) (string, error) {
	newID := uuid.NewString()

	err := db.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO packages (package_id, title, description, no_of_days, is_template, status, base_price, created_by)
			SELECT ?, ?, description, no_of_days, is_template, ?, base_price, ?
			FROM packages WHERE package_id = ?
		`, newID, title, models.PackageDraft, db.NullIfEmpty(createdBy), packageID)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.NotFoundError{Resource: "package"}
		}

		if _, err := tx.Exec(`
			INSERT INTO package_locations (package_id, location_id, day_number, visit_order, notes)
			SELECT ?, location_id, day_number, visit_order, notes
			FROM package_locations WHERE package_id = ?
		`, newID, packageID); err != nil {
			return domain.InternalError{Err: err}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return newID, nil
}

func scanPackage(row interface{ Scan(...any) error }) (models.Package, error) {
	var (
		p             models.Package
		description   string
		basePrice     sql.NullFloat64
		createdBy     sql.NullString
		createdByName sql.NullString
	)
	err := row.Scan(
		&p.PackageID, &p.Title, &description, &p.NoOfDays, &p.IsTemplate,
		&p.Status, &p.IsActive, &basePrice, &createdBy, &p.CreatedAt, &p.UpdatedAt,
		&createdByName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Package{}, domain.NotFoundError{Resource: "package", Err: err}
		}
		return models.Package{}, domain.InternalError{Err: err}
	}
	p.Description = description
	p.BasePrice = db.NullFloatPtr(basePrice)
	p.CreatedBy = db.NullString(createdBy)
	p.CreatedByName = db.NullString(createdByName)
	return p, nil
}
