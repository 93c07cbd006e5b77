package routes

import (
	"studytrack_go/controllers"
	"studytrack_go/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	progressController := &controllers.ProgressController{}
	healthController := controllers.NewHealthController(nil)

	// Health check endpoint
	app.Get("/health", healthController.GetHealthStatus)

	// API group
	api := app.Group("/api")

	// Root endpoint listing the API surface
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "StudyTrack API",
			"version": "1.0",
			"endpoints": fiber.Map{
				"register":  "/api/auth/register",
				"login":     "/api/auth/login",
				"verify":    "/api/auth/verify",
				"logout":    "/api/auth/logout",
				"dashboard": "/api/progress/dashboard",
				"update":    "/api/progress/update",
			},
		})
	})

	// Authentication routes
	auth := api.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/verify", middleware.JWTMiddleware(), authController.Verify)
	// Logout accepts an optional bearer token, so no middleware here
	auth.Post("/logout", authController.Logout)

	// Progress routes (require authentication). The role gate for the
	// dashboard lives in the controller so teachers get the policy message
	// rather than a generic permissions error.
	progress := api.Group("/progress", middleware.JWTMiddleware())
	progress.Get("/dashboard", progressController.Dashboard)
	progress.Post("/update", progressController.UpdateProgress)
}
