package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"travelgo/internal/domain"
	"travelgo/internal/http/middleware"
	"travelgo/internal/repositories"
)

type AdminHandler struct {
	DB *sql.DB
}

func (h AdminHandler) repo() repositories.AdminRepository {
	return repositories.AdminRepository{DB: h.DB}
}

// GET /api/admins
func (h AdminHandler) List(c *gin.Context) {
	rows, err := h.repo().List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", rows)
}

// GET /api/admins/:id
func (h AdminHandler) Get(c *gin.Context) {
	admin, err := h.repo().GetByID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", admin)
}

type createAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// POST /api/admins
func (h AdminHandler) Create(c *gin.Context) {
	var req createAdminRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	adminID, err := h.repo().Create(req.Email, string(hash), req.Name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	admin, err := h.repo().GetByID(adminID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "admin created", admin)
}

// PUT /api/admins/:id
func (h AdminHandler) Update(c *gin.Context) {
	adminID := c.Param("id")

	var req repositories.AdminUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	if _, err := h.repo().GetByID(adminID); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.repo().Update(adminID, req); err != nil {
		RespondDomainError(c, err)
		return
	}

	admin, err := h.repo().GetByID(adminID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "admin updated", admin)
}

// DELETE /api/admins/:id
//
// An admin cannot delete their own account.
func (h AdminHandler) Delete(c *gin.Context) {
	adminID := c.Param("id")
	if adminID == middleware.GetUserID(c) {
		RespondError(c, http.StatusBadRequest, "cannot delete your own account", nil)
		return
	}

	if err := h.repo().Delete(adminID); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "admin deleted", nil)
}
