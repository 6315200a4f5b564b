package common

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a single-field validation error response
func SendValidationError(c echo.Context, field, message string) error {
	return SendValidationErrors(c, map[string]string{field: message})
}

// SendValidationErrors sends a 422 with one message per invalid field
func SendValidationErrors(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusUnprocessableEntity, CreateErrorResponse("VALIDATION_ERROR", "The given data was invalid.", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendConflictError sends a conflict error response
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", message, nil))
}

// SendTooManyRequestsError sends a rate limit error response
func SendTooManyRequestsError(c echo.Context) error {
	return c.JSON(http.StatusTooManyRequests, CreateErrorResponse("TOO_MANY_REQUESTS", "Too Many Attempts.", nil))
}

// SecureErrorMessage creates standardized error messages to prevent information leakage
func SecureErrorMessage(operation string, err error) error {
	if err == nil {
		return nil
	}

	// The caller logs err; only the operation name reaches the client
	return fmt.Errorf("failed to %s: operation could not be completed", operation)
}
