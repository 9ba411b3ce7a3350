package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgo/internal/http/middleware"
)

func submitRouter(db *sql.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/api/bookings/submit", BookingHandler{DB: db}.Submit)
	return r
}

func postSubmit(r *gin.Engine, body string, header ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, h := range header {
		h(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitAcceptsNestedTravelerBody(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// unknown package so the request stops right after binding succeeds
	mock.ExpectQuery("FROM packages").WillReturnError(sql.ErrNoRows)

	body := `{
		"package_id": "pkg-404",
		"traveler": {"name": "Nimal", "email": "nimal@example.com", "contact": "0771234567"}
	}`
	w := postSubmit(submitRouter(db), body)

	assert.Equal(t, http.StatusNotFound, w.Code, "body: %s", w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitValidationErrors(t *testing.T) {
	r := submitRouter(nil)

	body := `{"package_id":"pkg-1","traveler":{"name":"Nimal","email":"not-an-email"}}`
	w := postSubmit(r, body)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success   bool              `json:"success"`
		Message   string            `json:"message"`
		Errors    map[string]string `json:"errors"`
		RequestID string            `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Message)
	assert.Contains(t, resp.Errors, "Email")
	assert.Contains(t, resp.Errors, "Contact")
	assert.NotContains(t, resp.Errors, "NoOfTravelers", "group size is optional")
	assert.NotEmpty(t, resp.RequestID)
}

func TestSubmitRejectsZeroTravelers(t *testing.T) {
	r := submitRouter(nil)

	body := `{
		"package_id": "pkg-1",
		"traveler": {"name": "Nimal", "email": "nimal@example.com", "contact": "0771234567"},
		"no_of_travelers": -1
	}`
	w := postSubmit(r, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NoOfTravelers")
}

func TestSubmitMalformedBody(t *testing.T) {
	r := submitRouter(nil)

	w := postSubmit(r, "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestSubmitEchoesClientRequestID(t *testing.T) {
	r := submitRouter(nil)

	w := postSubmit(r, `{}`, func(req *http.Request) {
		req.Header.Set("X-Request-ID", "client-supplied-id")
	})

	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), "client-supplied-id")
}
