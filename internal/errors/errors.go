package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

type codeInfo struct {
	status         int
	defaultMessage string
}

var codes = map[string]codeInfo{
	ErrCodeUnauthorized:  {http.StatusUnauthorized, "Authentication required"},
	ErrCodeInvalidInput:  {http.StatusBadRequest, "Invalid request"},
	ErrCodeNotFound:      {http.StatusNotFound, "Resource not found"},
	ErrCodeConflict:      {http.StatusConflict, "Resource conflict"},
	ErrCodeInternalError: {http.StatusInternalServerError, "Internal server error"},
}

// APIError is the body of every non-2xx response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Status returns the HTTP status that goes with the error code
func (e *APIError) Status() int {
	if info, ok := codes[e.Code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// NewAPIError builds an APIError, filling in the code's default message
// when message is empty.
func NewAPIError(code, message string, details interface{}) *APIError {
	if message == "" {
		message = codes[code].defaultMessage
	}
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Respond writes err and stops the handler chain
func Respond(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(err.Status(), err)
}

func Unauthorized(c *gin.Context, message string) {
	Respond(c, NewAPIError(ErrCodeUnauthorized, message, nil))
}

func NotFound(c *gin.Context, message string) {
	Respond(c, NewAPIError(ErrCodeNotFound, message, nil))
}

func BadRequest(c *gin.Context, message string) {
	Respond(c, NewAPIError(ErrCodeInvalidInput, message, nil))
}

// InvalidField sends a 400 naming the offending field in details
func InvalidField(c *gin.Context, field, message string) {
	Respond(c, NewAPIError(ErrCodeInvalidInput, message, gin.H{"field": field}))
}

func Conflict(c *gin.Context, message string) {
	Respond(c, NewAPIError(ErrCodeConflict, message, nil))
}

// InternalError sends a 500. Callers log the cause; it never reaches the client.
func InternalError(c *gin.Context) {
	Respond(c, NewAPIError(ErrCodeInternalError, "", nil))
}
