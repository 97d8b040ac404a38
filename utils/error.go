package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FieldError points at the request field a failure concerns.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// HandleErrors is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// HTTPStatus maps an error onto the status code it is reported with.
func HTTPStatus(err error) int {
	de, ok := AsDomainError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch de.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a JSON error body. Domain errors keep their
// field and message; anything else is logged and hidden behind a generic 500.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	de, ok := AsDomainError(err)
	if !ok || de.Kind == KindIntegrity {
		GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, ErrorResponse{
			Message: "Internal Server Error",
			Details: "An unexpected error occurred. Please try again later.",
		})
		return
	}
	GetLogger().Debug("request rejected", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(status, ErrorResponse{
		Message: http.StatusText(status),
		Errors:  []FieldError{{Field: de.Field, Message: de.Message}},
	})
}
