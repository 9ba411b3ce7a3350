package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelgo/internal/repositories"
)

type LocationHandler struct {
	DB *sql.DB
}

func (h LocationHandler) repo() repositories.LocationRepository {
	return repositories.LocationRepository{DB: h.DB}
}

// GET /api/locations (public)
func (h LocationHandler) List(c *gin.Context) {
	rows, err := h.repo().List(c.Query("search"), c.Query("location_type"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", rows)
}

// GET /api/locations/:id (public)
func (h LocationHandler) Get(c *gin.Context) {
	location, err := h.repo().GetByID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", location)
}

type createLocationRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	LocationType string `json:"location_type"`
	LocationURL  string `json:"location_url" validate:"omitempty,url"`
}

// POST /api/locations (admin)
func (h LocationHandler) Create(c *gin.Context) {
	var req createLocationRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	locationID, err := h.repo().Create(repositories.NewLocation{
		Name:         req.Name,
		Description:  req.Description,
		LocationType: req.LocationType,
		LocationURL:  req.LocationURL,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	location, err := h.repo().GetByID(locationID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "location created", location)
}

// PUT /api/locations/:id (admin)
func (h LocationHandler) Update(c *gin.Context) {
	locationID := c.Param("id")

	var req repositories.LocationUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	if _, err := h.repo().GetByID(locationID); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.repo().Update(locationID, req); err != nil {
		RespondDomainError(c, err)
		return
	}

	location, err := h.repo().GetByID(locationID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "location updated", location)
}

// DELETE /api/locations/:id (admin)
func (h LocationHandler) Delete(c *gin.Context) {
	if err := h.repo().Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "location deleted", nil)
}
