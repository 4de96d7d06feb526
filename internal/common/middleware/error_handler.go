package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "atlas3-backend/internal/common/errors"
	"atlas3-backend/internal/common/logger"
)

// ErrorHandler recovers panics and answers with a 500.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("request_id", getRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("panic", fmt.Sprintf("%v", recovered)).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		abortWithError(c, apperrors.New(apperrors.ErrCodeInternal, "Internal server error"))
	})
}

// RequestID tags the request with X-Request-ID, generating one if absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorResponder renders the last error a handler pushed with c.Error.
// Errors that are not AppErrors become a generic 500.
func ErrorResponder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.Wrap(err, apperrors.ErrCodeInternal, "Internal server error")
		}
		writeError(c, appErr)
	}
}

// MethodNotAllowed answers routes registered for other methods.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithError(c, apperrors.New(apperrors.ErrCodeMethodNotAllowed, "Method not allowed"))
	}
}

// RouteNotFound answers paths no route matches.
func RouteNotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithError(c, apperrors.NewNotFoundError("Route"))
	}
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	writeError(c, appErr)
	c.Abort()
}

func writeError(c *gin.Context, appErr *apperrors.AppError) {
	requestID := getRequestID(c)
	status := appErr.HTTPStatus()
	logError(c, appErr, status, requestID)

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		// internal causes stay in the logs
		message = "Internal server error"
	}
	c.JSON(status, gin.H{
		"message":    message,
		"code":       appErr.Code,
		"request_id": requestID,
	})
}

func logError(c *gin.Context, appErr *apperrors.AppError, status int, requestID string) {
	event := logger.Info()
	switch {
	case appErr.IsInternal():
		event = logger.Error()
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		event = logger.Warn()
	}

	event = event.
		Str("request_id", requestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message)
	if userID := c.GetString("user_id"); userID != "" {
		event = event.Str("user_id", userID)
	}
	if len(appErr.Details) > 0 {
		event = event.Interface("details", appErr.Details)
	}
	if appErr.Cause != nil {
		event = event.Err(appErr.Cause)
	}
	event.Msg("Request failed")
}

func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return "unknown"
}
