package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/pkg/apperror"
)

// ErrorHandler renders the last error a handler attached to the
// context. AppError carries its own status code; anything else is an
// internal error and only a generic message leaves the server.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				reqID, _ := c.Get("RequestID")
				slog.Error("unhandled error", "request_id", reqID, "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
