package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiError Error
		if errors.As(err, &apiError) {
			return c.Status(apiError.Code).JSON(apiError)
		}

		var valError ValidationError
		if errors.As(err, &valError) {
			return c.Status(valError.Status).JSON(valError)
		}

		code := fiber.StatusInternalServerError
		var fiberError *fiber.Error
		if errors.As(err, &fiberError) {
			code = fiberError.Code
		}

		apiError = NewError(code, err.Error())
		logger.Warn("[HTTP] request failed", zap.Int("code", apiError.Code), zap.String("error", apiError.Message))
		return c.Status(apiError.Code).JSON(apiError)
	}
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}

// Error implements the Error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

func ErrMissingFile() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "multipart field 'file' is required",
	}
}

func ErrUnsupportedFile(filename string) Error {
	return Error{
		Code:    fiber.StatusUnsupportedMediaType,
		Message: fmt.Sprintf("%s: unsupported file type, upload a .pdf, .xlsx or .xls document", filename),
	}
}

func ErrNoDocument() Error {
	return Error{
		Code:    fiber.StatusConflict,
		Message: "Please upload a document to start.",
	}
}

func ErrNoSession() Error {
	return Error{
		Code:    fiber.StatusInternalServerError,
		Message: "session not initialised",
	}
}
