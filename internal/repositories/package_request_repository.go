package repositories

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"travelgo/internal/db"
	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
)

type PackageRequestRepository struct {
	DB *sql.DB
}

func (r PackageRequestRepository) GetDetail(requestID string) (models.PackageRequestDetail, error) {
	row := r.DB.QueryRow(`
		SELECT
			pr.request_id, pr.traveler_id, pr.title, COALESCE(pr.description,''),
			pr.no_of_days, pr.no_of_travelers, pr.preferred_start_date,
			COALESCE(pr.budget_range,''), COALESCE(pr.special_requirements,''),
			pr.status, COALESCE(pr.admin_notes,''), pr.package_id, pr.created_at,
			t.name, t.email
		FROM package_requests pr
		INNER JOIN travelers t ON pr.traveler_id = t.traveler_id
		WHERE pr.request_id = ?
	`, requestID)
	return scanPackageRequest(row)
}

func (r PackageRequestRepository) List(status, travelerID string) ([]models.PackageRequestDetail, error) {
	query := `
		SELECT
			pr.request_id, pr.traveler_id, pr.title, COALESCE(pr.description,''),
			pr.no_of_days, pr.no_of_travelers, pr.preferred_start_date,
			COALESCE(pr.budget_range,''), COALESCE(pr.special_requirements,''),
			pr.status, COALESCE(pr.admin_notes,''), pr.package_id, pr.created_at,
			t.name, t.email
		FROM package_requests pr
		INNER JOIN travelers t ON pr.traveler_id = t.traveler_id
		WHERE 1=1`
	args := []any{}
	if status != "" {
		query += ` AND pr.status = ?`
		args = append(args, status)
	}
	if travelerID != "" {
		query += ` AND pr.traveler_id = ?`
		args = append(args, travelerID)
	}
	query += ` ORDER BY pr.created_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.PackageRequestDetail{}
	for rows.Next() {
		d, err := scanPackageRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type NewPackageRequest struct {
	TravelerID          string
	Title               string
	Description         string
	NoOfDays            int
	NoOfTravelers       int
	PreferredStartDate  string
	BudgetRange         string
	SpecialRequirements string
}

func (r PackageRequestRepository) Create(nr NewPackageRequest) (string, error) {
	requestID := uuid.NewString()
	travelers := nr.NoOfTravelers
	if travelers < 1 {
		travelers = 1
	}
	_, err := r.DB.Exec(`
		INSERT INTO package_requests (
			request_id, traveler_id, title, description, no_of_days, no_of_travelers,
			preferred_start_date, budget_range, special_requirements, status
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		requestID, nr.TravelerID, nr.Title, db.NullIfEmpty(nr.Description), nr.NoOfDays, travelers,
		db.NullIfEmpty(nr.PreferredStartDate), db.NullIfEmpty(nr.BudgetRange), db.NullIfEmpty(nr.SpecialRequirements),
		models.RequestPending,
	)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return requestID, nil
}

func (r PackageRequestRepository) UpdateStatus(requestID, status, adminNotes string) error {
	_, err := r.DB.Exec(`
		UPDATE package_requests SET status = ?, admin_notes = COALESCE(?, admin_notes)
		WHERE request_id = ?
	`, status, db.NullIfEmpty(adminNotes), requestID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// Approve links the request to an optional resulting package. The
// WHERE guard keeps re-approval out.
func (r PackageRequestRepository) Approve(requestID, packageID, adminNotes string) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE package_requests
		SET status = ?, package_id = ?, admin_notes = COALESCE(?, admin_notes)
		WHERE request_id = ? AND status <> ?
	`, models.RequestApproved, db.NullIfEmpty(packageID), db.NullIfEmpty(adminNotes), requestID, models.RequestApproved)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

func (r PackageRequestRepository) Reject(requestID, adminNotes string) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE package_requests
		SET status = ?, admin_notes = COALESCE(?, admin_notes)
		WHERE request_id = ? AND status <> ?
	`, models.RequestRejected, db.NullIfEmpty(adminNotes), requestID, models.RequestRejected)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

func (r PackageRequestRepository) Stats() (models.PackageRequestStats, error) {
	var s models.PackageRequestStats
	err := r.DB.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'reviewing' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0)
		FROM package_requests
	`).Scan(&s.TotalRequests, &s.PendingRequests, &s.ReviewingRequests, &s.ApprovedRequests, &s.RejectedRequests)
	if err != nil {
		return models.PackageRequestStats{}, domain.InternalError{Err: err}
	}
	return s, nil
}

func scanPackageRequest(row interface{ Scan(...any) error }) (models.PackageRequestDetail, error) {
	var (
		d             models.PackageRequestDetail
		preferredDate sql.NullString
		packageID     sql.NullString
	)
	err := row.Scan(
		&d.RequestID, &d.TravelerID, &d.Title, &d.Description,
		&d.NoOfDays, &d.NoOfTravelers, &preferredDate,
		&d.BudgetRange, &d.SpecialRequirements,
		&d.Status, &d.AdminNotes, &packageID, &d.CreatedAt,
		&d.TravelerName, &d.TravelerEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PackageRequestDetail{}, domain.NotFoundError{Resource: "package request", Err: err}
		}
		return models.PackageRequestDetail{}, domain.InternalError{Err: err}
	}
	d.PreferredStartDate = db.NullString(preferredDate)
	d.PackageID = db.NullString(packageID)
	return d, nil
}
