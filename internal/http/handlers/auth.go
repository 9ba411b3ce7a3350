package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelgo/internal/config"
	"travelgo/internal/http/middleware"
	"travelgo/internal/mailer"
	"travelgo/internal/repositories"
	"travelgo/internal/services"
)

type AuthHandler struct {
	DB   *sql.DB
	Mail mailer.Sender
	Env  config.Env
}

func (h AuthHandler) service(c *gin.Context) services.AuthService {
	return services.AuthService{
		Admins:       repositories.AdminRepository{DB: h.DB},
		Travelers:    repositories.TravelerRepository{DB: h.DB},
		JWTSecret:    []byte(h.Env.JWTSecret),
		JWTExpiresIn: h.Env.JWTExpiresIn,
		Mail:         h.Mail,
		RequestID:    middleware.GetRequestID(c),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	result, err := h.service(c).Login(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "login successful", result)
}

// GET /api/auth/me
func (h AuthHandler) Me(c *gin.Context) {
	user, err := h.service(c).CurrentUser(middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// POST /api/auth/change-password
func (h AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	err := h.service(c).ChangePassword(
		middleware.GetUserID(c), middleware.GetUserRole(c),
		req.CurrentPassword, req.NewPassword,
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "password changed", nil)
}

// POST /api/auth/logout
//
// Sessions are stateless JWTs so there is nothing to revoke server
// side; the endpoint exists so clients have a uniform flow.
func (h AuthHandler) Logout(c *gin.Context) {
	Respond(c, http.StatusOK, "logged out", nil)
}
