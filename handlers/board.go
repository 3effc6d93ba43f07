package handlers

import (
	"golf-quota-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// SetupBoardRoutes registers the read-only public views. No auth — members
// and guests browse these.
func SetupBoardRoutes(app *fiber.App, boardService *services.BoardService) {
	app.Get("/board", boardService.GetBoard)
	app.Get("/board/players/:id", boardService.GetPlayerQuota)
	app.Get("/board/tournaments", boardService.GetTournaments)
}
