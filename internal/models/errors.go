package models

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jins0l/ai-board-project/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned to clients. Raw driver or network error text is never
// part of a response; it is logged for operators instead.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeDuplicate        = "DUPLICATE"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewDuplicateError(message string) *AppError {
	return &AppError{
		Code:    CodeDuplicate,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewStoreUnavailableError() *AppError {
	return &AppError{
		Code:    CodeStoreUnavailable,
		Message: "Database is not available",
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// statusForCode maps an error code to its HTTP status.
func statusForCode(code string) int {
	switch code {
	case CodeValidation, CodeDuplicate:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeStoreUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a standardized error response with the given status.
// The wrapped cause of an AppError is logged, never returned to the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "request error",
				slog.String("code", appErr.Code),
				slog.String("error", appErr.Err.Error()),
			)
		}
	} else {
		response = ErrorResponse{
			Error: "Internal server error",
			Code:  CodeInternal,
		}
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.String("error", err.Error()),
		)
	}

	return c.Status(status).JSON(response)
}

// RespondWithAppError writes an error response deriving the HTTP status from
// the error's code. Non-AppError values are treated as internal errors.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return RespondWithError(c, statusForCode(appErr.Code), appErr)
	}
	return RespondWithError(c, fiber.StatusInternalServerError, err)
}
