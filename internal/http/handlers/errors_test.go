package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"travelgo/internal/domain"
)

func TestDomainErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ValidationError{Field: "status", Msg: "bad"}, http.StatusBadRequest},
		{"not found", domain.NotFoundError{Resource: "booking"}, http.StatusNotFound},
		{"conflict", domain.ConflictError{Resource: "booking", Msg: "already confirmed"}, http.StatusBadRequest},
		{"unauthorized", domain.UnauthorizedError{Msg: "invalid email or password"}, http.StatusUnauthorized},
		{"forbidden", domain.ForbiddenError{Msg: "account is not active"}, http.StatusForbidden},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondDomainError(c, tc.err)

			assert.Equal(t, tc.want, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestInternalErrorDetailIsHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondDomainError(c, errors.New("dsn user:pass@tcp leaked"))

	assert.NotContains(t, w.Body.String(), "dsn")
	assert.Contains(t, w.Body.String(), "something went wrong")
}
