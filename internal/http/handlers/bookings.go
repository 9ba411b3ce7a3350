package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelgo/internal/domain/models"
	"travelgo/internal/http/middleware"
	"travelgo/internal/mailer"
	"travelgo/internal/repositories"
	"travelgo/internal/services"
	"travelgo/internal/utils"
)

type BookingHandler struct {
	DB          *sql.DB
	Mail        mailer.Sender
	FrontendURL string
}

func (h BookingHandler) service(c *gin.Context) services.BookingService {
	return services.BookingService{
		Bookings:    repositories.BookingRepository{DB: h.DB},
		Travelers:   repositories.TravelerRepository{DB: h.DB},
		Packages:    repositories.PackageRepository{DB: h.DB},
		Mail:        h.Mail,
		FrontendURL: h.FrontendURL,
		RequestID:   middleware.GetRequestID(c),
	}
}

func (h BookingHandler) repo() repositories.BookingRepository {
	return repositories.BookingRepository{DB: h.DB}
}

type submitTraveler struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Contact string `json:"contact" validate:"required"`
}

type submitBookingRequest struct {
	PackageID     string         `json:"package_id" validate:"required"`
	Traveler      submitTraveler `json:"traveler" validate:"required"`
	NoOfTravelers int            `json:"no_of_travelers" validate:"omitempty,min=1"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	AgentID       string         `json:"agent_id"`
	TravelerNotes string         `json:"traveler_notes"`
}

// POST /api/bookings/submit (public)
func (h BookingHandler) Submit(c *gin.Context) {
	var req submitBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	result, err := h.service(c).Submit(services.SubmitInput{
		PackageID:       req.PackageID,
		TravelerName:    req.Traveler.Name,
		TravelerEmail:   req.Traveler.Email,
		TravelerContact: req.Traveler.Contact,
		NoOfTravelers:   req.NoOfTravelers,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		AgentID:         req.AgentID,
		TravelerNotes:   req.TravelerNotes,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	Respond(c, http.StatusCreated, "booking submitted", gin.H{
		"booking":        result.Booking,
		"is_new_account": result.IsNewAccount,
	})
}

// GET /api/bookings (admin)
func (h BookingHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	filter := models.BookingFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		TravelerID:    c.Query("traveler_id"),
		AgentID:       c.Query("agent_id"),
		Search:        c.Query("search"),
	}

	total, err := h.repo().Count(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	p := utils.BuildPagination(page, limit, total)
	filter.Limit = p.Limit
	filter.Offset = p.Offset

	rows, err := h.repo().List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, rows, p)
}

// GET /api/bookings/traveler/:travelerId (admin or own)
func (h BookingHandler) ListByTraveler(c *gin.Context) {
	travelerID := c.Param("travelerId")
	if !allowSelfOrAdmin(c, travelerID) {
		return
	}

	page, limit := pageParams(c)
	filter := models.BookingFilter{TravelerID: travelerID, Status: c.Query("status")}

	total, err := h.repo().Count(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	p := utils.BuildPagination(page, limit, total)
	filter.Limit = p.Limit
	filter.Offset = p.Offset

	rows, err := h.repo().List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, rows, p)
}

// GET /api/bookings/stats (admin)
func (h BookingHandler) Stats(c *gin.Context) {
	stats, err := h.repo().Stats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", stats)
}

// GET /api/bookings/:id (admin or own)
func (h BookingHandler) Get(c *gin.Context) {
	booking, err := h.repo().GetDetail(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !allowSelfOrAdmin(c, booking.TravelerID) {
		return
	}
	Respond(c, http.StatusOK, "", booking)
}

// GET /api/bookings/:id/voucher (admin or own)
func (h BookingHandler) Voucher(c *gin.Context) {
	bookingID := c.Param("id")

	booking, err := h.repo().GetDetail(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !allowSelfOrAdmin(c, booking.TravelerID) {
		return
	}

	svc := services.VoucherService{
		Bookings:  h.repo(),
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateVoucher(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// PUT /api/bookings/:id (admin)
func (h BookingHandler) Update(c *gin.Context) {
	var req models.BookingUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := h.service(c).Update(c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "booking updated", booking)
}

// POST /api/bookings/:id/confirm (admin)
func (h BookingHandler) Confirm(c *gin.Context) {
	booking, err := h.service(c).Confirm(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "booking confirmed", booking)
}

// POST /api/bookings/:id/cancel (admin or own)
func (h BookingHandler) Cancel(c *gin.Context) {
	bookingID := c.Param("id")

	existing, err := h.repo().GetDetail(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !allowSelfOrAdmin(c, existing.TravelerID) {
		return
	}

	booking, err := h.service(c).Cancel(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "booking cancelled", booking)
}

type statusPatchRequest struct {
	Status string `json:"status" validate:"required"`
}

// PATCH /api/bookings/:id/status (admin)
func (h BookingHandler) PatchStatus(c *gin.Context) {
	var req statusPatchRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := h.service(c).UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "booking status updated", booking)
}

// allowSelfOrAdmin aborts with 403 unless the caller is an admin or
// the traveler who owns the resource.
func allowSelfOrAdmin(c *gin.Context, travelerID string) bool {
	role := middleware.GetUserRole(c)
	if role == models.RoleAdmin {
		return true
	}
	if role == models.RoleTraveler && middleware.GetUserID(c) == travelerID {
		return true
	}
	RespondError(c, http.StatusForbidden, "insufficient permissions", nil)
	c.Abort()
	return false
}
