package repositories

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"travelgo/internal/db"
	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

// GetDetail loads a booking joined with its package, traveler, agent
// and confirming admin.
func (r BookingRepository) GetDetail(bookingID string) (models.BookingDetail, error) {
	var (
		d                models.BookingDetail
		agentID          sql.NullString
		startDate        sql.NullString
		endDate          sql.NullString
		totalAmount      sql.NullFloat64
		confirmationDate sql.NullTime
		confirmedBy      sql.NullString
		adminNotes       sql.NullString
		travelerNotes    sql.NullString
		agentName        sql.NullString
		agentEmail       sql.NullString
		confirmedByName  sql.NullString
	)

	err := r.DB.QueryRow(`
		SELECT
			b.booking_id, b.package_id, b.traveler_id, b.agent_id,
			b.status, b.payment_status, b.no_of_travelers,
			b.start_date, b.end_date, b.total_amount, b.booking_date,
			b.confirmation_date, b.confirmed_by, b.admin_notes, b.traveler_notes,
			p.title, p.no_of_days,
			t.name, t.email, COALESCE(t.contact,''),
			a.name, a.email,
			adm.name
		FROM bookings b
		INNER JOIN packages p ON b.package_id = p.package_id
		INNER JOIN travelers t ON b.traveler_id = t.traveler_id
		LEFT JOIN agents a ON b.agent_id = a.agent_id
		LEFT JOIN admins adm ON b.confirmed_by = adm.admin_id
		WHERE b.booking_id = ?
	`, bookingID).Scan(
		&d.BookingID, &d.PackageID, &d.TravelerID, &agentID,
		&d.Status, &d.PaymentStatus, &d.NoOfTravelers,
		&startDate, &endDate, &totalAmount, &d.BookingDate,
		&confirmationDate, &confirmedBy, &adminNotes, &travelerNotes,
		&d.PackageTitle, &d.PackageDays,
		&d.TravelerName, &d.TravelerEmail, &d.TravelerContact,
		&agentName, &agentEmail,
		&confirmedByName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetail{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}

	d.AgentID = db.NullString(agentID)
	d.StartDate = db.NullString(startDate)
	d.EndDate = db.NullString(endDate)
	d.TotalAmount = db.NullFloatPtr(totalAmount)
	d.ConfirmationDate = db.NullTimePtr(confirmationDate)
	d.ConfirmedBy = db.NullString(confirmedBy)
	d.AdminNotes = db.NullString(adminNotes)
	d.TravelerNotes = db.NullString(travelerNotes)
	d.AgentName = db.NullString(agentName)
	d.AgentEmail = db.NullString(agentEmail)
	d.ConfirmedByName = db.NullString(confirmedByName)
	return d, nil
}

func (r BookingRepository) List(f models.BookingFilter) ([]models.BookingSummary, error) {
	query := `
		SELECT
			b.booking_id, b.status, b.payment_status, b.no_of_travelers,
			b.start_date, b.end_date, b.total_amount, b.booking_date, b.confirmation_date,
			p.title,
			t.name, t.email,
			a.name
		FROM bookings b
		INNER JOIN packages p ON b.package_id = p.package_id
		INNER JOIN travelers t ON b.traveler_id = t.traveler_id
		LEFT JOIN agents a ON b.agent_id = a.agent_id
		WHERE 1=1`
	args := []any{}

	if f.Status != "" {
		query += ` AND b.status = ?`
		args = append(args, f.Status)
	}
	if f.PaymentStatus != "" {
		query += ` AND b.payment_status = ?`
		args = append(args, f.PaymentStatus)
	}
	if f.TravelerID != "" {
		query += ` AND b.traveler_id = ?`
		args = append(args, f.TravelerID)
	}
	if f.AgentID != "" {
		query += ` AND b.agent_id = ?`
		args = append(args, f.AgentID)
	}
	if f.PackageID != "" {
		query += ` AND b.package_id = ?`
		args = append(args, f.PackageID)
	}
	if f.Search != "" {
		query += ` AND (p.title LIKE ? OR t.name LIKE ? OR t.email LIKE ?)`
		term := "%" + f.Search + "%"
		args = append(args, term, term, term)
	}
	query += ` ORDER BY b.booking_date DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.BookingSummary{}
	for rows.Next() {
		var (
			s                models.BookingSummary
			startDate        sql.NullString
			endDate          sql.NullString
			totalAmount      sql.NullFloat64
			confirmationDate sql.NullTime
			agentName        sql.NullString
		)
		if err := rows.Scan(
			&s.BookingID, &s.Status, &s.PaymentStatus, &s.NoOfTravelers,
			&startDate, &endDate, &totalAmount, &s.BookingDate, &confirmationDate,
			&s.PackageTitle,
			&s.TravelerName, &s.TravelerEmail,
			&agentName,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		s.StartDate = db.NullString(startDate)
		s.EndDate = db.NullString(endDate)
		s.TotalAmount = db.NullFloatPtr(totalAmount)
		s.ConfirmationDate = db.NullTimePtr(confirmationDate)
		s.AgentName = db.NullString(agentName)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r BookingRepository) Count(f models.BookingFilter) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		INNER JOIN packages p ON b.package_id = p.package_id
		INNER JOIN travelers t ON b.traveler_id = t.traveler_id
		WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		query += ` AND b.status = ?`
		args = append(args, f.Status)
	}
	if f.PaymentStatus != "" {
		query += ` AND b.payment_status = ?`
		args = append(args, f.PaymentStatus)
	}
	if f.TravelerID != "" {
		query += ` AND b.traveler_id = ?`
		args = append(args, f.TravelerID)
	}
	if f.Search != "" {
		query += ` AND (p.title LIKE ? OR t.name LIKE ? OR t.email LIKE ?)`
		term := "%" + f.Search + "%"
		args = append(args, term, term, term)
	}

	var total int
	if err := r.DB.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return total, nil
}

// NewBooking carries the insert payload. Status and payment status are
// forced to temporary/pending by Create.
type NewBooking struct {
	PackageID     string
	TravelerID    string
	AgentID       string
	NoOfTravelers int
	StartDate     string
	EndDate       string
	TotalAmount   *float64
	TravelerNotes string
}

// Create inserts a booking in its initial state and returns the id.
func (r BookingRepository) Create(nb NewBooking) (string, error) {
	bookingID := uuid.NewString()
	travelers := nb.NoOfTravelers
	if travelers < 1 {
		travelers = 1
	}

	var totalAmount any
	if nb.TotalAmount != nil {
		totalAmount = *nb.TotalAmount
	}

	_, err := r.DB.Exec(`
		INSERT INTO bookings (
			booking_id, package_id, traveler_id, agent_id, status,
			no_of_travelers, start_date, end_date, total_amount,
			payment_status, traveler_notes
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		bookingID, nb.PackageID, nb.TravelerID, db.NullIfEmpty(nb.AgentID), models.BookingTemporary,
		travelers, db.NullIfEmpty(nb.StartDate), db.NullIfEmpty(nb.EndDate), totalAmount,
		models.PaymentPending, db.NullIfEmpty(nb.TravelerNotes),
	)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return bookingID, nil
}

func (r BookingRepository) Update(bookingID string, u models.BookingUpdate) error {
	sets := []string{}
	args := []any{}

	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *u.Status)
	}
	if u.NoOfTravelers != nil {
		sets = append(sets, "no_of_travelers = ?")
		args = append(args, *u.NoOfTravelers)
	}
	if u.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, db.NullIfEmpty(*u.StartDate))
	}
	if u.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, db.NullIfEmpty(*u.EndDate))
	}
	if u.TotalAmount != nil {
		sets = append(sets, "total_amount = ?")
		args = append(args, *u.TotalAmount)
	}
	if u.PaymentStatus != nil {
		sets = append(sets, "payment_status = ?")
		args = append(args, *u.PaymentStatus)
	}
	if u.AgentID != nil {
		sets = append(sets, "agent_id = ?")
		args = append(args, db.NullIfEmpty(*u.AgentID))
	}
	if u.AdminNotes != nil {
		sets = append(sets, "admin_notes = ?")
		args = append(args, *u.AdminNotes)
	}
	if u.TravelerNotes != nil {
		sets = append(sets, "traveler_notes = ?")
		args = append(args, *u.TravelerNotes)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, bookingID)
	_, err := r.DB.Exec(`UPDATE bookings SET `+joinSets(sets)+` WHERE booking_id = ?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// Confirm performs the conditional status transition. The WHERE guard
// makes concurrent confirmations race-safe: only one update can win,
// the loser sees zero affected rows.
func (r BookingRepository) Confirm(bookingID, adminID string) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE bookings
		SET status = ?, confirmation_date = NOW(), confirmed_by = ?
		WHERE booking_id = ? AND status <> ?
	`, models.BookingConfirmed, adminID, bookingID, models.BookingConfirmed)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// Cancel transitions a booking to cancelled. Terminal states are
// excluded in the WHERE clause so completed or already-cancelled
// bookings are left untouched.
func (r BookingRepository) Cancel(bookingID string) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE bookings
		SET status = ?
		WHERE booking_id = ? AND status NOT IN (?, ?)
	`, models.BookingCancelled, bookingID, models.BookingCompleted, models.BookingCancelled)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// UpdateStatus sets status without any side effects. Used for
// administrative corrections only; the confirm transition is reserved
// for Confirm so its side effects always fire together.
func (r BookingRepository) UpdateStatus(bookingID, status string) error {
	_, err := r.DB.Exec(`UPDATE bookings SET status = ? WHERE booking_id = ?`, status, bookingID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r BookingRepository) UpdatePaymentStatus(bookingID, paymentStatus string) error {
	_, err := r.DB.Exec(`UPDATE bookings SET payment_status = ? WHERE booking_id = ?`, paymentStatus, bookingID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r BookingRepository) Stats() (models.BookingStats, error) {
	var (
		s            models.BookingStats
		totalRevenue sql.NullFloat64
		paidRevenue  sql.NullFloat64
	)
	err := r.DB.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'temporary' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'confirmed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0),
			SUM(total_amount),
			SUM(CASE WHEN payment_status = 'paid' THEN total_amount ELSE 0 END)
		FROM bookings
	`).Scan(
		&s.TotalBookings,
		&s.TemporaryBookings,
		&s.ConfirmedBookings,
		&s.CompletedBookings,
		&s.CancelledBookings,
		&totalRevenue,
		&paidRevenue,
	)
	if err != nil {
		return models.BookingStats{}, domain.InternalError{Err: err}
	}
	if totalRevenue.Valid {
		s.TotalRevenue = totalRevenue.Float64
	}
	if paidRevenue.Valid {
		s.PaidRevenue = paidRevenue.Float64
	}
	return s, nil
}
