package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelgo/internal/http/middleware"
	"travelgo/internal/mailer"
	"travelgo/internal/repositories"
	"travelgo/internal/services"
)

type PackageRequestHandler struct {
	DB   *sql.DB
	Mail mailer.Sender
}

func (h PackageRequestHandler) service(c *gin.Context) services.PackageRequestService {
	return services.PackageRequestService{
		Requests:  repositories.PackageRequestRepository{DB: h.DB},
		Packages:  repositories.PackageRepository{DB: h.DB},
		Travelers: repositories.TravelerRepository{DB: h.DB},
		Mail:      h.Mail,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h PackageRequestHandler) repo() repositories.PackageRequestRepository {
	return repositories.PackageRequestRepository{DB: h.DB}
}

type createRequestRequest struct {
	Title               string `json:"title" validate:"required"`
	Description         string `json:"description"`
	NoOfDays            int    `json:"no_of_days" validate:"required,min=1"`
	NoOfTravelers       int    `json:"no_of_travelers" validate:"min=0"`
	PreferredStartDate  string `json:"preferred_start_date"`
	BudgetRange         string `json:"budget_range"`
	SpecialRequirements string `json:"special_requirements"`
}

// POST /api/package-requests (traveler)
func (h PackageRequestHandler) Create(c *gin.Context) {
	var req createRequestRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	detail, err := h.service(c).Create(repositories.NewPackageRequest{
		TravelerID:          middleware.GetUserID(c),
		Title:               req.Title,
		Description:         req.Description,
		NoOfDays:            req.NoOfDays,
		NoOfTravelers:       req.NoOfTravelers,
		PreferredStartDate:  req.PreferredStartDate,
		BudgetRange:         req.BudgetRange,
		SpecialRequirements: req.SpecialRequirements,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "request submitted", detail)
}

// GET /api/package-requests (admin)
func (h PackageRequestHandler) List(c *gin.Context) {
	rows, err := h.repo().List(c.Query("status"), c.Query("traveler_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", rows)
}

// GET /api/package-requests/traveler/:travelerId (admin or own)
func (h PackageRequestHandler) ListByTraveler(c *gin.Context) {
	travelerID := c.Param("travelerId")
	if !allowSelfOrAdmin(c, travelerID) {
		return
	}

	rows, err := h.repo().List(c.Query("status"), travelerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", rows)
}

// GET /api/package-requests/stats (admin)
func (h PackageRequestHandler) Stats(c *gin.Context) {
	stats, err := h.repo().Stats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", stats)
}

// GET /api/package-requests/:id (admin or own)
func (h PackageRequestHandler) Get(c *gin.Context) {
	detail, err := h.repo().GetDetail(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !allowSelfOrAdmin(c, detail.TravelerID) {
		return
	}
	Respond(c, http.StatusOK, "", detail)
}

type requestStatusPatch struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"admin_notes"`
}

// PATCH /api/package-requests/:id/status (admin)
func (h PackageRequestHandler) PatchStatus(c *gin.Context) {
	var req requestStatusPatch
	if !BindJSONOrError(c, &req) {
		return
	}

	detail, err := h.service(c).UpdateStatus(c.Param("id"), req.Status, req.AdminNotes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "request status updated", detail)
}

type approveRequest struct {
	PackageID  string `json:"package_id" validate:"required"`
	AdminNotes string `json:"admin_notes"`
}

// POST /api/package-requests/:id/approve (admin)
func (h PackageRequestHandler) Approve(c *gin.Context) {
	var req approveRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	detail, err := h.service(c).Approve(c.Param("id"), req.PackageID, req.AdminNotes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "request approved", detail)
}

type rejectRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// POST /api/package-requests/:id/reject (admin)
func (h PackageRequestHandler) Reject(c *gin.Context) {
	var req rejectRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}

	detail, err := h.service(c).Reject(c.Param("id"), req.AdminNotes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "request rejected", detail)
}

// GET /api/package-requests/:id/summary (admin, PDF)
func (h PackageRequestHandler) SummaryPDF(c *gin.Context) {
	svc := services.VoucherService{
		Requests:  h.repo(),
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateRequestSummary(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

