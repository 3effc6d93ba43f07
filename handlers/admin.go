package handlers

import (
	"golf-quota-tracker/middleware"
	"golf-quota-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes registers everything behind the admin session: roster and
// tournament CRUD, CSV upload, reports, backup/restore, PIN management.
func SetupAdminRoutes(
	app *fiber.App,
	authService *services.AuthService,
	boardService *services.BoardService,
	playerService *services.PlayerService,
	tournamentService *services.TournamentService,
	uploadService *services.UploadService,
	backupService *services.BackupService,
) {
	admin := app.Group("/admin", middleware.AdminSession(authService.Valid))

	// Roster CRUD
	admin.Get("/players", playerService.ListPlayers)
	admin.Post("/players", playerService.CreatePlayer)
	admin.Put("/players/:id", playerService.UpdatePlayer)
	admin.Delete("/players/:id", playerService.DeletePlayer)

	// Tournament CRUD + score entry
	admin.Get("/tournaments/:id", tournamentService.GetTournament)
	admin.Post("/tournaments", tournamentService.CreateTournament)
	admin.Delete("/tournaments/:id", tournamentService.DeleteTournament)
	admin.Put("/tournaments/:id/results/:player_id", tournamentService.PutResult)
	admin.Delete("/tournaments/:id/results/:player_id", tournamentService.DeleteResult)

	// CSV upload workflow
	admin.Get("/upload/template", uploadService.GetTemplate)
	admin.Post("/upload/preview", uploadService.PreviewUpload)
	admin.Post("/upload/apply", uploadService.ApplyUpload)

	// Reports
	admin.Get("/reports/quotas", boardService.GetQuotaReport)

	// Backup / restore
	admin.Get("/backup", backupService.Download)
	admin.Post("/restore", backupService.Restore)
	admin.Post("/backup/r2", backupService.PushToR2)

	// Settings
	admin.Put("/settings/pin", authService.UpdatePIN)
}
