// Package routers assembles the fiber application.
package routers

import (
	"entrelaunch/config"
	authControllers "entrelaunch/controllers/auth"
	courseControllers "entrelaunch/controllers/course"
	"entrelaunch/logger"
	"entrelaunch/middleware"
	"entrelaunch/models"
	"entrelaunch/routers/authRoutes"
	"entrelaunch/routers/courseRoutes"
	"entrelaunch/services/catalog"
	"entrelaunch/services/payment"
	"entrelaunch/services/refund"
	"entrelaunch/services/roles"
	"entrelaunch/services/training"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

type Deps struct {
	Config    *config.Config
	Log       *logger.Logger
	DB        *gorm.DB
	Training  *training.Service
	Catalog   *catalog.Service
	Payments  payment.Service
	Refunds   refund.Service
	Roles     roles.Service
	AccessLog bool
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    d.Config.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))
	if d.AccessLog {
		app.Use(fiberLogger.New(fiberLogger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}

	auth := middleware.JWTMiddleware(d.Config.JWTKey)
	admin := middleware.CheckRoleMiddleware(d.Roles, models.RoleAdmin, d.Log)

	authRoutes.SetupAuthRoutes(app, authControllers.NewHandler(d.DB, d.Log, d.Config.JWTKey, d.Config.SaltRound), auth)

	course := courseControllers.NewHandler(d.Training, d.Catalog, d.Payments, d.Refunds)
	courseRoutes.SetupCourseRoutes(app, course, auth)
	courseRoutes.SetupAdminCourseRoutes(app, course, auth, admin)

	return app
}
