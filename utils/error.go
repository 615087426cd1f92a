package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stable machine-readable error codes surfaced by the service layer.
const (
	CodeNotFound            = "not_found"
	CodeNotAuthorized       = "not_authorized"
	CodeInvalidArgument     = "invalid_argument"
	CodeInvalidTransition   = "invalid_transition"
	CodeAlreadyPaid         = "already_paid"
	CodeAlreadySettled      = "already_settled"
	CodePrematurePayment    = "premature_payment"
	CodeServiceNotCompleted = "service_not_completed"
)

// ServiceError is a typed business-rule violation. Validation errors are
// raised before any persistence write happens.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewServiceError(code, message string) error {
	return &ServiceError{Code: code, Message: message}
}

func NotFoundError(what string) error {
	return &ServiceError{Code: CodeNotFound, Message: what + " not found"}
}

func NotAuthorizedError(message string) error {
	return &ServiceError{Code: CodeNotAuthorized, Message: message}
}

func InvalidArgumentError(message string) error {
	return &ServiceError{Code: CodeInvalidArgument, Message: message}
}

func InvalidTransitionError(message string) error {
	return &ServiceError{Code: CodeInvalidTransition, Message: message}
}

// AsServiceError unwraps err into a *ServiceError if one is in the chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// httpStatus maps an error code to the HTTP status handlers respond with.
func httpStatus(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeNotAuthorized:
		return http.StatusForbidden
	case CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		// Transition/idempotency/ordering guards are client errors.
		return http.StatusBadRequest
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

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
	logger := GetLogger()
	logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError renders a service error with its mapped status, or a 500 for
// anything untyped.
func RespondError(c *gin.Context, err error) {
	if se, ok := AsServiceError(err); ok {
		c.JSON(httpStatus(se.Code), ErrorResponse{Code: se.Code, Message: se.Message})
		return
	}
	logger := GetLogger()
	logger.Error("internal error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
}
