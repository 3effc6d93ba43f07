package handlers

import (
	"golf-quota-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	app.Post("/auth/login", authService.Login)
	app.Post("/auth/logout", authService.Logout)
}
