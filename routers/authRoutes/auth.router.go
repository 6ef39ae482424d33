package authRoutes

import (
	authControllers "entrelaunch/controllers/auth"
	authValidators "entrelaunch/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app fiber.Router, h *authControllers.Handler, auth fiber.Handler) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), h.Signup)
	authGroup.Post("/login", authValidators.Login(), h.Login)
	authGroup.Get("/login/history", auth, authValidators.LoginHistoryList(), h.LoginHistoryList)
	authGroup.Put("/change/login/password", auth, authValidators.ChangeLoginPassword(), h.ChangeLoginPassword)
}
