package controllers

import (
	"entrelaunch/middleware"
	"entrelaunch/services/training"
	"entrelaunch/validators"
	courseValidator "entrelaunch/validators/course"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) VerifyEligibility(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.VerifyEligibility(c.UserContext(), validators.ID(c, "id"), userID))
}

func (h *Handler) EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	res := h.training.Enroll(c.UserContext(), training.EnrollmentCreate{CourseID: validators.ID(c, "id"), UserID: userID})
	return middleware.Respond(c, fiber.StatusCreated, res)
}

func (h *Handler) Unenroll(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.Unenroll(c.UserContext(), validators.ID(c, "id"), userID))
}

func (h *Handler) UpdateProgress(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	req := validators.Get[courseValidator.ProgressRequest](c, courseValidator.ProgressKey)
	res := h.training.RecordProgress(c.UserContext(), training.ProgressUpdate{
		CourseID:         validators.ID(c, "id"),
		UserID:           userID,
		LessonID:         req.LessonID,
		TimeSpentSeconds: req.TimeSpentSeconds,
	})
	return middleware.Respond(c, fiber.StatusOK, res)
}

func (h *Handler) GetProgress(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.GetProgress(c.UserContext(), validators.ID(c, "id"), userID))
}

func (h *Handler) GetEnrollments(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.ListUserEnrollments(c.UserContext(), userID))
}
