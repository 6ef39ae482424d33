package controllers

import (
	"entrelaunch/middleware"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/catalog"
	"entrelaunch/services/payment"
	"entrelaunch/services/refund"
	"entrelaunch/services/training"
	"entrelaunch/validators"
	courseValidator "entrelaunch/validators/course"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the course, exam, certificate and admin routes.
type Handler struct {
	training *training.Service
	catalog  *catalog.Service
	payments payment.Service
	refunds  refund.Service
}

func NewHandler(t *training.Service, c *catalog.Service, p payment.Service, r refund.Service) *Handler {
	return &Handler{training: t, catalog: c, payments: p, refunds: r}
}

func unauthorized(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
}

// ListCourses lists active courses unless another status is asked for.
func (h *Handler) ListCourses(c *fiber.Ctx) error {
	q := validators.Get[courseValidator.CourseListRequest](c, courseValidator.CourseListKey)
	status := q.Status
	if status == "" {
		status = courseModels.CourseActive
	}
	return middleware.Respond(c, fiber.StatusOK, h.catalog.ListCourses(c.UserContext(), q.Page, q.Limit, status))
}

func (h *Handler) GetCourse(c *fiber.Ctx) error {
	return middleware.Respond(c, fiber.StatusOK, h.catalog.GetCourse(c.UserContext(), validators.ID(c, "id")))
}

func (h *Handler) ListLessons(c *fiber.Ctx) error {
	return middleware.Respond(c, fiber.StatusOK, h.catalog.ListLessons(c.UserContext(), validators.ID(c, "id")))
}

func (h *Handler) GetCourseRating(c *fiber.Ctx) error {
	return middleware.Respond(c, fiber.StatusOK, h.catalog.GetCourseRating(c.UserContext(), validators.ID(c, "id")))
}

func (h *Handler) RateCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	req := validators.Get[courseValidator.RateRequest](c, courseValidator.RateKey)
	res := h.catalog.RateCourse(c.UserContext(), catalog.RatingCreate{
		CourseID: validators.ID(c, "id"),
		UserID:   userID,
		Score:    req.Score,
		Comment:  req.Comment,
	})
	return middleware.Respond(c, fiber.StatusOK, res)
}
