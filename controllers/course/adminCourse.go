package controllers

import (
	"entrelaunch/middleware"
	"entrelaunch/services/catalog"
	"entrelaunch/validators"
	courseValidator "entrelaunch/validators/course"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) AdminCreateCourse(c *fiber.Ctx) error {
	req := validators.Get[courseValidator.CourseCreateRequest](c, courseValidator.CourseCreateKey)
	res := h.catalog.CreateCourse(c.UserContext(), catalog.CourseCreate{
		Title:         req.Title,
		Description:   req.Description,
		Author:        req.Author,
		ThumbnailURL:  req.ThumbnailURL,
		MaxEnrollment: req.MaxEnrollment,
		IsFree:        req.IsFree,
		Price:         req.Price,
		EndsAt:        req.EndsAt,
	})
	return middleware.Respond(c, fiber.StatusCreated, res)
}

func (h *Handler) AdminUpdateCourse(c *fiber.Ctx) error {
	req := validators.Get[courseValidator.CourseUpdateRequest](c, courseValidator.CourseUpdateKey)
	res := h.catalog.UpdateCourse(c.UserContext(), validators.ID(c, "id"), catalog.CourseUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Author:        req.Author,
		ThumbnailURL:  req.ThumbnailURL,
		MaxEnrollment: req.MaxEnrollment,
		IsFree:        req.IsFree,
		Price:         req.Price,
		EndsAt:        req.EndsAt,
	})
	return middleware.Respond(c, fiber.StatusOK, res)
}

func (h *Handler) AdminChangeCourseStatus(c *fiber.Ctx) error {
	req := validators.Get[courseValidator.CourseStatusRequest](c, courseValidator.CourseStatusKey)
	return middleware.Respond(c, fiber.StatusOK, h.catalog.ChangeCourseStatus(c.UserContext(), validators.ID(c, "id"), req.Status))
}

func (h *Handler) AdminDeleteCourse(c *fiber.Ctx) error {
	return middleware.Respond(c, fiber.StatusOK, h.catalog.DeleteCourse(c.UserContext(), validators.ID(c, "id")))
}

func (h *Handler) AdminCreateLesson(c *fiber.Ctx) error {
	req := validators.Get[courseValidator.LessonCreateRequest](c, courseValidator.LessonCreateKey)
	res := h.catalog.CreateLesson(c.UserContext(), validators.ID(c, "id"), catalog.LessonCreate{
		Title:           req.Title,
		Content:         req.Content,
		VideoURL:        req.VideoURL,
		OrderIndex:      req.OrderIndex,
		DurationMinutes: req.DurationMinutes,
	})
	return middleware.Respond(c, fiber.StatusCreated, res)
}

func (h *Handler) AdminCreateExam(c *fiber.Ctx) error {
	req := validators.Get[courseValidator.ExamCreateRequest](c, courseValidator.ExamCreateKey)
	exam := catalog.ExamCreate{
		CourseID:        req.CourseID,
		LessonID:        req.LessonID,
		PathID:          req.PathID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		MinMark:         req.MinMark,
		MaxAttempts:     req.MaxAttempts,
	}
	for _, q := range req.Questions {
		question := catalog.QuestionCreate{Text: q.Text, Mark: q.Mark}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, catalog.AnswerCreate{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		exam.Questions = append(exam.Questions, question)
	}
	return middleware.Respond(c, fiber.StatusCreated, h.catalog.CreateExam(c.UserContext(), exam))
}

func (h *Handler) AdminCreatePath(c *fiber.Ctx) error {
	req := validators.Get[courseValidator.PathCreateRequest](c, courseValidator.PathCreateKey)
	res := h.catalog.CreatePath(c.UserContext(), catalog.PathCreate{Title: req.Title, Description: req.Description})
	return middleware.Respond(c, fiber.StatusCreated, res)
}

func (h *Handler) AdminGetCourseEnrollments(c *fiber.Ctx) error {
	page := validators.Get[validators.Pagination](c, courseValidator.EnrollmentListKey)
	courseID := validators.ID(c, "id")
	if found := h.catalog.GetCourse(c.UserContext(), courseID); !found.IsSuccess {
		return middleware.Respond(c, fiber.StatusOK, found)
	}
	return middleware.Respond(c, fiber.StatusOK, h.training.ListCourseEnrollments(c.UserContext(), courseID, page.Page, page.Limit))
}

func (h *Handler) AdminDashboardStats(c *fiber.Ctx) error {
	return middleware.Respond(c, fiber.StatusOK, h.catalog.DashboardStats(c.UserContext()))
}
