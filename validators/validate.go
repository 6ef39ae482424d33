// Package validators holds the shared request binding used by the per-area
// validator middlewares.
package validators

import (
	"entrelaunch/middleware"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Struct validates req and returns field messages keyed by their JSON path.
func Struct(req interface{}) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"request": err.Error()}
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", fe.Field())
	case "email":
		return "Invalid email!"
	case "url":
		return fmt.Sprintf("%s must be a valid URL!", fe.Field())
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must have at least %s characters or items!", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must have at most %s characters or items!", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s!", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more!", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s!", fe.Field(), fe.Param())
	case "e164", "numeric":
		return "Invalid mobile number!"
	}
	return fmt.Sprintf("%s is invalid!", fe.Field())
}

// Body parses the JSON body into T, validates it and stores it under key.
func Body[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.BodyParser(req); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errs := Struct(req); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals(key, req)
		return c.Next()
	}
}

// Query parses the query string into T, validates it and stores it under key.
func Query[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.QueryParser(req); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		if errs := Struct(req); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals(key, req)
		return c.Next()
	}
}

// ParamID requires a positive integer route parameter and stores it as uint under the same name.
func ParamID(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(name))
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, fmt.Sprintf("Invalid %s!", name), nil)
		}
		c.Locals(name, uint(id))
		return c.Next()
	}
}

// ID reads a parameter stored by ParamID.
func ID(c *fiber.Ctx, name string) uint {
	id, _ := c.Locals(name).(uint)
	return id
}

// Pagination is the common page/limit query.
type Pagination struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Get returns the value stored under key by Body or Query, or nil.
func Get[T any](c *fiber.Ctx, key string) *T {
	v, _ := c.Locals(key).(*T)
	return v
}
