package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	DB *sql.DB
}

// GET /api/health
func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// GET /api/db-check
func (h SystemHandler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		RespondError(c, http.StatusInternalServerError, "database is not connected", nil)
		return
	}

	var n int
	if err := h.DB.QueryRow("SELECT 1").Scan(&n); err != nil {
		RespondError(c, http.StatusInternalServerError, "database ping failed", err)
		return
	}
	Respond(c, http.StatusOK, "database connection ok", nil)
}
