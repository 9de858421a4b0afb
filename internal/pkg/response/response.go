package response

import (
	"errors"

	"carmarket-backend/internal/policies"

	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the standardized success JSON shape.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

const statusSuccess = "success"
const statusError = "error"

// Success sends a 200 OK response with the standard success format.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(fiber.StatusOK).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// SuccessCreated sends a 201 Created response with the standard success format.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(fiber.StatusCreated).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// Unauthorized sends 401 with the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized, nil)
}

// StatusFor maps a policy error kind to its HTTP status code. The mapping
// is the same for every resource type: denial is 403, not-found (which
// deliberately covers not-visible) is 404, the remaining client faults are
// 400, and anything unclassified is a 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, policies.ErrPermissionDenied):
		return fiber.StatusForbidden
	case errors.Is(err, policies.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, policies.ErrInvalidState),
		errors.Is(err, policies.ErrImmutableField),
		errors.Is(err, policies.ErrInvalidRequest):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// FromError renders a policy/service error with the standard error format.
// Unclassified errors are masked as Internal Server Error.
func FromError(c *fiber.Ctx, err error) error {
	code := StatusFor(err)
	if code == fiber.StatusInternalServerError {
		return Error(c, "Internal Server Error", code, nil)
	}
	return Error(c, err.Error(), code, nil)
}
