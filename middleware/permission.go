package middleware

import (
	"context"
	"entrelaunch/logger"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RoleChecker interface {
	IsUserInRole(ctx context.Context, tx *gorm.DB, userID uint, role string) (bool, error)
}

// CheckRoleMiddleware lets the request through only when the caller holds the role.
// It must run after JWTMiddleware.
func CheckRoleMiddleware(checker RoleChecker, role string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := UserID(c)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		held, err := checker.IsUserInRole(c.UserContext(), nil, userID, role)
		if err != nil {
			log.Error("Failed to check role", "user_id", userID, "role", role, "error", err)
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}
		if !held {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
		return c.Next()
	}
}
