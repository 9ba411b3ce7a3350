package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"travelgo/internal/http/middleware"
	"travelgo/internal/utils"
)

var validate = validator.New()

// Respond sends the standard success envelope.
func Respond(c *gin.Context, status int, message string, data any) {
	payload := gin.H{
		"success":    true,
		"request_id": middleware.GetRequestID(c),
	}
	if message != "" {
		payload["message"] = message
	}
	if data != nil {
		payload["data"] = data
	}
	c.JSON(status, payload)
}

// RespondList sends a page of rows plus pagination metadata.
func RespondList(c *gin.Context, data any, p utils.Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": p,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError ensures the body is present, parsable and passes the
// struct's validate tags.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload", err)
		return false
	}
	if errs := validationErrors(dst); errs != nil {
		respondValidation(c, errs)
		return false
	}
	return true
}

func validationErrors(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"payload": err.Error()}
	}
	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = "failed on " + fe.Tag()
	}
	return out
}

func respondValidation(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success":    false,
		"message":    "validation failed",
		"errors":     errs,
		"request_id": middleware.GetRequestID(c),
	})
}

// pageParams reads ?page and ?limit with the usual defaults.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
