package services

import (
	"log"
	"strings"

	"golf-quota-tracker/models"
	"golf-quota-tracker/utils"

	"github.com/gofiber/fiber/v2"
)

// TournamentService is the admin CRUD surface for events and their score
// entries.
type TournamentService struct {
	Store *DocumentStore
}

func NewTournamentService(store *DocumentStore) *TournamentService {
	return &TournamentService{Store: store}
}

// GetTournament returns one event with its full results mapping.
func (s *TournamentService) GetTournament(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := s.Store.Load()
	if err != nil {
		log.Printf("ERROR loading document for tournament %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	t, ok := doc.Tournaments[id]
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
	}
	return c.JSON(fiber.Map{
		"id":      id,
		"name":    t.Name,
		"date":    t.Date,
		"results": t.Results,
	})
}

// CreateTournament creates an event, or merges into the existing one when the
// derived (name, date) key already exists — identical uploads never duplicate
// an event.
func (s *TournamentService) CreateTournament(c *fiber.Ctx) error {
	type Req struct {
		Name string `json:"name"`
		Date string `json:"date"` // MM/DD/YYYY or ISO; invalid → undated
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	date := utils.MMDDYYYYToISO(req.Date)
	key := models.TournamentKey(name, date)

	merged := false
	_, err := s.Store.Update(func(doc *models.Document) error {
		if _, ok := doc.Tournaments[key]; ok {
			merged = true
			return nil
		}
		doc.Tournaments[key] = models.TournamentRecord{
			Name:    name,
			Date:    date,
			Results: map[string]models.ScoreList{},
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR creating tournament: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to create tournament"})
	}
	status := 201
	if merged {
		status = 200
	}
	return c.Status(status).JSON(fiber.Map{
		"id":     key,
		"name":   name,
		"date":   date,
		"merged": merged,
	})
}

// PutResult writes one player's score list for an event, overwriting any
// prior entry for the pair.
func (s *TournamentService) PutResult(c *fiber.Ctx) error {
	tid := c.Params("id")
	pid := c.Params("player_id")
	type Req struct {
		Scores []float64 `json:"scores"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if len(req.Scores) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "scores are required"})
	}

	_, err := s.Store.Update(func(doc *models.Document) error {
		t, ok := doc.Tournaments[tid]
		if !ok {
			return errNotFound
		}
		if _, ok := doc.Players[pid]; !ok {
			return errNotFound
		}
		t.Results[pid] = models.ScoreList(req.Scores)
		doc.Tournaments[tid] = t
		return nil
	})
	if err == errNotFound {
		return c.Status(404).JSON(fiber.Map{"error": "tournament or player not found"})
	}
	if err != nil {
		log.Printf("ERROR writing result %s/%s: %v", tid, pid, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to write result"})
	}
	return c.JSON(fiber.Map{"message": "result saved", "tournament_id": tid, "player_id": pid})
}

// DeleteResult removes one player's entry from an event.
func (s *TournamentService) DeleteResult(c *fiber.Ctx) error {
	tid := c.Params("id")
	pid := c.Params("player_id")
	_, err := s.Store.Update(func(doc *models.Document) error {
		t, ok := doc.Tournaments[tid]
		if !ok {
			return errNotFound
		}
		if _, ok := t.Results[pid]; !ok {
			return errNotFound
		}
		delete(t.Results, pid)
		doc.Tournaments[tid] = t
		return nil
	})
	if err == errNotFound {
		return c.Status(404).JSON(fiber.Map{"error": "result not found"})
	}
	if err != nil {
		log.Printf("ERROR deleting result %s/%s: %v", tid, pid, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete result"})
	}
	return c.JSON(fiber.Map{"message": "result deleted"})
}

func (s *TournamentService) DeleteTournament(c *fiber.Ctx) error {
	id := c.Params("id")
	_, err := s.Store.Update(func(doc *models.Document) error {
		if _, ok := doc.Tournaments[id]; !ok {
			return errNotFound
		}
		delete(doc.Tournaments, id)
		return nil
	})
	if err == errNotFound {
		return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
	}
	if err != nil {
		log.Printf("ERROR deleting tournament %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete tournament"})
	}
	return c.JSON(fiber.Map{"message": "tournament deleted"})
}
