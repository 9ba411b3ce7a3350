package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelgo/internal/repositories"
	"travelgo/internal/utils"
)

type TravelerHandler struct {
	DB *sql.DB
}

func (h TravelerHandler) repo() repositories.TravelerRepository {
	return repositories.TravelerRepository{DB: h.DB}
}

// GET /api/travelers (admin)
func (h TravelerHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	filter := repositories.TravelerFilter{
		IsActive: boolQuery(c, "is_active"),
		Search:   c.Query("search"),
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

// GET /api/travelers/:id (admin or own)
func (h TravelerHandler) Get(c *gin.Context) {
	travelerID := c.Param("id")
	if !allowSelfOrAdmin(c, travelerID) {
		return
	}

	traveler, err := h.repo().GetByID(travelerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", traveler)
}

// PUT /api/travelers/:id (admin or own)
func (h TravelerHandler) Update(c *gin.Context) {
	travelerID := c.Param("id")
	if !allowSelfOrAdmin(c, travelerID) {
		return
	}

	var req repositories.TravelerUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := h.repo().Update(travelerID, req); err != nil {
		RespondDomainError(c, err)
		return
	}

	traveler, err := h.repo().GetByID(travelerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "traveler updated", traveler)
}

// POST /api/travelers/:id/activate (admin)
func (h TravelerHandler) Activate(c *gin.Context) {
	travelerID := c.Param("id")

	if _, err := h.repo().GetByID(travelerID); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.repo().Activate(travelerID); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "traveler activated", nil)
}

// DELETE /api/travelers/:id (admin)
func (h TravelerHandler) Delete(c *gin.Context) {
	if err := h.repo().Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "traveler deleted", nil)
}
