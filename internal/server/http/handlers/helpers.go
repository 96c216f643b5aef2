package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
	"github.com/polkiloo/courierdesk/internal/domain/model"
	"github.com/polkiloo/courierdesk/internal/server/http/middleware"
)

// CurrentCaller extracts the authenticated caller from context.
func CurrentCaller(c *gin.Context) model.Caller {
	val, ok := c.Get(middleware.CallerContextKey)
	if !ok {
		return model.Anonymous
	}
	caller, _ := val.(model.Caller)
	return caller
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidOrder), errors.Is(err, domainErrors.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with {"error": ...}. Internal failures are not exposed.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}
