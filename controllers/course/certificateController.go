package controllers

import (
	"entrelaunch/middleware"
	"entrelaunch/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) IssueCertificate(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusCreated, h.training.Issue(c.UserContext(), validators.ID(c, "id"), userID))
}

func (h *Handler) GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.GetUserCertificates(c.UserContext(), userID))
}

// VerifyCertificate is public.
func (h *Handler) VerifyCertificate(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate code is required!", nil)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.VerifyCertificate(c.UserContext(), code))
}
