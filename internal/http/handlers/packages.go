package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelgo/internal/domain/models"
	"travelgo/internal/http/middleware"
	"travelgo/internal/repositories"
	"travelgo/internal/services"
)

type PackageHandler struct {
	DB *sql.DB
}

func (h PackageHandler) service(c *gin.Context) services.PackageService {
	return services.PackageService{
		Packages:  repositories.PackageRepository{DB: h.DB},
		Locations: repositories.LocationRepository{DB: h.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func (h PackageHandler) repo() repositories.PackageRepository {
	return repositories.PackageRepository{DB: h.DB}
}

// GET /api/packages
//
// Anonymous and traveler callers only see active published packages;
// admins may filter freely.
func (h PackageHandler) List(c *gin.Context) {
	filter := models.PackageFilter{Search: c.Query("search")}

	if middleware.GetUserRole(c) == models.RoleAdmin {
		filter.Status = c.Query("status")
		filter.IsActive = boolQuery(c, "is_active")
		filter.IsTemplate = boolQuery(c, "is_template")
	} else {
		active := true
		filter.Status = models.PackagePublished
		filter.IsActive = &active
	}

	rows, err := h.repo().List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", rows)
}

// GET /api/packages/:id
func (h PackageHandler) Get(c *gin.Context) {
	pkg, err := h.repo().GetWithItinerary(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if middleware.GetUserRole(c) != models.RoleAdmin && (pkg.Status != models.PackagePublished || !pkg.IsActive) {
		RespondError(c, http.StatusNotFound, "package not found", nil)
		return
	}
	Respond(c, http.StatusOK, "", pkg)
}

type createPackageRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	NoOfDays    int      `json:"no_of_days" validate:"required,min=1"`
	IsTemplate  bool     `json:"is_template"`
	BasePrice   *float64 `json:"base_price" validate:"omitempty,min=0"`
}

// POST /api/packages (admin)
func (h PackageHandler) Create(c *gin.Context) {
	var req createPackageRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	pkg, err := h.service(c).Create(repositories.NewPackage{
		Title:       req.Title,
		Description: req.Description,
		NoOfDays:    req.NoOfDays,
		IsTemplate:  req.IsTemplate,
		BasePrice:   req.BasePrice,
		CreatedBy:   middleware.GetUserID(c),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "package created", pkg)
}

// PUT /api/packages/:id (admin)
func (h PackageHandler) Update(c *gin.Context) {
	var req models.PackageUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	pkg, err := h.service(c).Update(c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "package updated", pkg)
}

// DELETE /api/packages/:id (admin, soft delete)
func (h PackageHandler) Delete(c *gin.Context) {
	if err := h.service(c).Deactivate(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "package deactivated", nil)
}

// POST /api/packages/:id/publish (admin)
func (h PackageHandler) Publish(c *gin.Context) {
	pkg, err := h.service(c).Publish(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "package published", pkg)
}

// POST /api/packages/:id/unpublish (admin)
func (h PackageHandler) Unpublish(c *gin.Context) {
	pkg, err := h.service(c).Unpublish(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "package unpublished", pkg)
}

type itineraryRequest struct {
	Itinerary []models.ItineraryInput `json:"itinerary" validate:"required,dive"`
}

// PUT /api/packages/:id/itinerary (admin)
func (h PackageHandler) ReplaceItinerary(c *gin.Context) {
	var req itineraryRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	pkg, err := h.service(c).ReplaceItinerary(c.Request.Context(), c.Param("id"), req.Itinerary)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "itinerary updated", pkg)
}

type duplicateRequest struct {
	Title string `json:"title"`
}

// POST /api/packages/:id/duplicate (admin)
func (h PackageHandler) Duplicate(c *gin.Context) {
	var req duplicateRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}

	pkg, err := h.service(c).Duplicate(c.Request.Context(), c.Param("id"), req.Title, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "package duplicated", pkg)
}
