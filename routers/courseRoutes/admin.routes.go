package courseRoutes

import (
	controllers "entrelaunch/controllers/course"
	"entrelaunch/validators"
	validator "entrelaunch/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes registers the admin routes behind auth and the admin role check.
func SetupAdminCourseRoutes(app fiber.Router, h *controllers.Handler, auth, admin fiber.Handler) {
	id := validators.ParamID("id")
	adminGroup := app.Group("/admin", auth, admin)

	adminGroup.Get("/dashboard", h.AdminDashboardStats)

	adminGroup.Post("/course/create", validator.CreateCourseAdmin(), h.AdminCreateCourse)
	adminGroup.Put("/course/:id", id, validator.UpdateCourseAdmin(), h.AdminUpdateCourse)
	adminGroup.Patch("/course/:id/status", id, validator.ChangeCourseStatus(), h.AdminChangeCourseStatus)
	adminGroup.Delete("/course/:id", id, h.AdminDeleteCourse)
	adminGroup.Post("/course/:id/lesson", id, validator.CreateLesson(), h.AdminCreateLesson)
	adminGroup.Get("/course/:id/enrollments", id, validator.ListEnrollments(), h.AdminGetCourseEnrollments)

	adminGroup.Post("/exam/create", validator.CreateExam(), h.AdminCreateExam)
	adminGroup.Post("/path/create", validator.CreatePath(), h.AdminCreatePath)

	adminGroup.Post("/payment/record", validator.RecordPayment(), h.AdminRecordPayment)
	adminGroup.Get("/refunds", validator.ListRefunds(), h.AdminListRefunds)
	adminGroup.Post("/refund/:id/resolve", id, validator.ResolveRefund(), h.AdminResolveRefund)
}
