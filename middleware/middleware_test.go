package middleware

import (
	"context"
	"encoding/json"
	"entrelaunch/logger"
	"entrelaunch/services/result"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const secret = "test-secret"

func decode(t *testing.T, resp *http.Response) result.Envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env result.Envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func whoAmI(c *fiber.Ctx) error {
	id, _ := UserID(c)
	return JsonResponse(c, fiber.StatusOK, true, "ok", id)
}

func TestJWTMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/me", JWTMiddleware(secret), whoAmI)

	valid, err := GenerateJWT(42, "Ada", "USER", "ada@example.com", secret)
	require.NoError(t, err)
	forged, err := GenerateJWT(42, "Ada", "USER", "ada@example.com", "other-secret")
	require.NoError(t, err)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 42,
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + valid, fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged, fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			env := decode(t, resp)
			if tt.status == fiber.StatusOK {
				assert.Equal(t, float64(42), env.Data)
				assert.Nil(t, env.ErrorType)
			} else {
				require.NotNil(t, env.ErrorType)
				assert.Equal(t, result.Unauthorized, *env.ErrorType)
			}
		})
	}
}

func TestRespondMapsKinds(t *testing.T) {
	kinds := map[result.ErrorType]int{
		result.NotFound:     404,
		result.BusinessRule: 400,
		result.Conflict:     409,
		result.Validation:   422,
		result.Unauthorized: 401,
		result.Forbidden:    403,
		result.Internal:     500,
	}
	for kind, status := range kinds {
		assert.Equal(t, status, StatusFor(kind), kind)
	}

	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return Respond(c, fiber.StatusCreated, result.Ok("created", 7))
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return Respond(c, fiber.StatusCreated, result.Fail[int](result.Conflict, "already issued"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	env := decode(t, resp)
	assert.True(t, env.IsSuccess)
	assert.Equal(t, float64(7), env.Data)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	env = decode(t, resp)
	assert.False(t, env.IsSuccess)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.ErrorType)
	assert.Equal(t, result.Conflict, *env.ErrorType)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.Nop())})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db password leaked here") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	env := decode(t, resp)
	assert.Equal(t, "Internal server error", env.Message)
	assert.Equal(t, result.Internal, *env.ErrorType)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, result.NotFound, *decode(t, resp).ErrorType)
}

type fakeRoles struct {
	held map[uint]bool
	err  error
}

func (f fakeRoles) IsUserInRole(_ context.Context, _ *gorm.DB, userID uint, _ string) (bool, error) {
	return f.held[userID], f.err
}

func TestCheckRoleMiddleware(t *testing.T) {
	newApp := func(checker RoleChecker) *fiber.App {
		app := fiber.New()
		app.Get("/admin", JWTMiddleware(secret), CheckRoleMiddleware(checker, "ADMIN", logger.Nop()), whoAmI)
		return app
	}
	call := func(app *fiber.App, userID uint) int {
		token, err := GenerateJWT(userID, "n", "USER", "e@example.com", secret)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	app := newApp(fakeRoles{held: map[uint]bool{1: true}})
	assert.Equal(t, fiber.StatusOK, call(app, 1))
	assert.Equal(t, fiber.StatusForbidden, call(app, 2))

	broken := newApp(fakeRoles{err: errors.New("db down")})
	assert.Equal(t, fiber.StatusInternalServerError, call(broken, 1))
}
