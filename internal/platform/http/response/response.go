// Package response writes the JSON envelopes shared by every endpoint.
package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/api"
	"blog_backend/internal/platform/http/middleware"
	"blog_backend/internal/shared/apperr"
)

// InternalErrorMessage is the only message clients see for unexpected failures.
const InternalErrorMessage = "Internal Server Error"

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error aborts the request with the envelope for err.
// Errors outside the taxonomy become a 500 with a fixed message; the cause
// is only echoed back when gin is not in release mode.
func Error(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperr.KindInternal {
		slog.Error("unexpected error",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", middleware.RequestIDFrom(c),
		)
		body := api.ErrorResponse{Success: false, Error: InternalErrorMessage}
		if gin.Mode() != gin.ReleaseMode && err != nil {
			detail := err.Error()
			body.Detail = &detail
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		return
	}

	body := api.ErrorResponse{Success: false, Error: appErr.Message}
	if len(appErr.Fields) > 0 {
		fields := make([]api.FieldError, len(appErr.Fields))
		for i, f := range appErr.Fields {
			fields[i] = api.FieldError{Field: f.Field, Message: f.Message}
		}
		body.Errors = &fields
	}
	c.AbortWithStatusJSON(StatusFor(appErr.Kind), body)
}

// Message writes {success: true, message}.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, api.MessageResponse{Success: true, Message: message})
}
