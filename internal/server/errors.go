package server

import (
	"errors"
	"net/http"

	"github.com/emrgen/jobpost/internal/module"
	"github.com/emrgen/jobpost/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIError is the error body of every failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// statusOf maps a service or auth error onto an http status and error code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrVersionConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrChatNotConfigured), errors.Is(err, module.ErrNoSecretToken):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, module.ErrMissingToken), errors.Is(err, module.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, module.ErrNotAdmin):
		return http.StatusForbidden, "permission_denied"
	}
	return http.StatusInternalServerError, "internal"
}

// respondError writes err as an ErrorEnvelope and aborts the request.
func respondError(c *gin.Context, err error) {
	status, code := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logrus.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "internal error"
	}

	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// badRequest reports a malformed request body or parameter.
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorEnvelope{
		Error: APIError{
			Message: err.Error(),
			Code:    "invalid_argument",
		},
	})
}
