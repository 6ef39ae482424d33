package middleware

import (
	"entrelaunch/logger"
	"entrelaunch/services/result"
	"errors"

	"github.com/gofiber/fiber/v2"
)

var statusByKind = map[result.ErrorType]int{
	result.NotFound:     fiber.StatusNotFound,
	result.BusinessRule: fiber.StatusBadRequest,
	result.Conflict:     fiber.StatusConflict,
	result.Validation:   fiber.StatusUnprocessableEntity,
	result.Unauthorized: fiber.StatusUnauthorized,
	result.Forbidden:    fiber.StatusForbidden,
	result.Internal:     fiber.StatusInternalServerError,
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(kind result.ErrorType) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

func kindFor(status int) result.ErrorType {
	switch status {
	case fiber.StatusNotFound:
		return result.NotFound
	case fiber.StatusConflict:
		return result.Conflict
	case fiber.StatusUnprocessableEntity:
		return result.Validation
	case fiber.StatusUnauthorized:
		return result.Unauthorized
	case fiber.StatusForbidden:
		return result.Forbidden
	}
	if status >= 500 {
		return result.Internal
	}
	return result.BusinessRule
}

// JsonResponse writes the standard envelope. Failures get an errorType derived from the status.
func JsonResponse(c *fiber.Ctx, statusCode int, isSuccess bool, message string, data interface{}) error {
	env := result.Envelope{IsSuccess: isSuccess, Message: message, Data: data}
	if !isSuccess {
		kind := kindFor(statusCode)
		env.ErrorType = &kind
	}
	return c.Status(statusCode).JSON(env)
}

// Respond renders a service result, using successStatus when it succeeded.
func Respond[T any](c *fiber.Ctx, successStatus int, r result.Result[T]) error {
	status := successStatus
	if !r.IsSuccess {
		status = StatusFor(r.Kind())
	}
	return c.Status(status).JSON(r.Envelope())
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// ErrorHandler renders errors escaping a handler as an envelope. Only fiber errors keep
// their message; anything else is logged and reported as an internal error.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return JsonResponse(c, fe.Code, false, fe.Message, nil)
		}
		log.Error("Unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error", nil)
	}
}
