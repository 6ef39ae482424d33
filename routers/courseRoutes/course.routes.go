package courseRoutes

import (
	controllers "entrelaunch/controllers/course"
	"entrelaunch/validators"
	validator "entrelaunch/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the student-facing routes. auth must be the JWT middleware.
func SetupCourseRoutes(app fiber.Router, h *controllers.Handler, auth fiber.Handler) {
	id := validators.ParamID("id")

	courseGroup := app.Group("/course", auth)
	courseGroup.Get("/list", validator.ListCourses(), h.ListCourses)
	courseGroup.Get("/:id", id, h.GetCourse)
	courseGroup.Get("/:id/lessons", id, h.ListLessons)
	courseGroup.Get("/:id/rating", id, h.GetCourseRating)
	courseGroup.Get("/:id/eligibility", id, h.VerifyEligibility)
	courseGroup.Post("/:id/enroll", id, h.EnrollInCourse)
	courseGroup.Delete("/:id/enroll", id, h.Unenroll)
	courseGroup.Patch("/:id/progress", id, validator.UpdateProgress(), h.UpdateProgress)
	courseGroup.Get("/:id/progress", id, h.GetProgress)
	courseGroup.Post("/:id/rate", id, validator.RateCourse(), h.RateCourse)

	examGroup := app.Group("/exam", auth)
	examGroup.Get("/:id", id, h.GetExam)
	examGroup.Get("/:id/can-retake", id, h.CanRetake)
	examGroup.Post("/:id/retake", id, validator.Retake(), h.RetakeExam)
	examGroup.Get("/:id/result", id, h.GetActiveResult)
	examGroup.Get("/:id/attempts", id, h.GetAttempts)
	examGroup.Post("/:id/certificate/issue", id, h.IssueCertificate)

	userGroup := app.Group("/user", auth)
	userGroup.Get("/enrollments", h.GetEnrollments)
	userGroup.Get("/certificates", h.GetUserCertificates)
	userGroup.Get("/payments", h.GetUserPayments)

	app.Get("/certificate/verify/:code", h.VerifyCertificate)
}
