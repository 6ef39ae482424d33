package controllers

import (
	"entrelaunch/middleware"
	"entrelaunch/services/training"
	"entrelaunch/validators"
	courseValidator "entrelaunch/validators/course"

	"github.com/gofiber/fiber/v2"
)

// GetExam returns the exam without its correct answers.
func (h *Handler) GetExam(c *fiber.Ctx) error {
	return middleware.Respond(c, fiber.StatusOK, h.catalog.GetExam(c.UserContext(), validators.ID(c, "id"), false))
}

func (h *Handler) CanRetake(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.CanRetake(c.UserContext(), validators.ID(c, "id"), userID))
}

func (h *Handler) RetakeExam(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	req := validators.Get[courseValidator.RetakeRequest](c, courseValidator.RetakeKey)
	res := h.training.Retake(c.UserContext(), training.RetakeRequest{
		ExamID:           validators.ID(c, "id"),
		UserID:           userID,
		Answers:          req.Answers,
		TimeTakenSeconds: req.TimeTakenSeconds,
	})
	return middleware.Respond(c, fiber.StatusCreated, res)
}

func (h *Handler) GetActiveResult(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.GetActiveResult(c.UserContext(), validators.ID(c, "id"), userID))
}

func (h *Handler) GetAttempts(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.GetAllAttempts(c.UserContext(), validators.ID(c, "id"), userID))
}
