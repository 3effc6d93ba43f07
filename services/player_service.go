package services

import (
	"log"
	"sort"
	"strings"

	"golf-quota-tracker/models"
	"golf-quota-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PlayerService is the admin CRUD surface for the roster.
type PlayerService struct {
	Store *DocumentStore
}

func NewPlayerService(store *DocumentStore) *PlayerService {
	return &PlayerService{Store: store}
}

func (s *PlayerService) ListPlayers(c *fiber.Ctx) error {
	doc, err := s.Store.Load()
	if err != nil {
		log.Printf("ERROR loading document for player list: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	type row struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Age          int    `json:"age"`
		InitialQuota int    `json:"initial_quota"`
	}
	rows := make([]row, 0, len(doc.Players))
	for id, p := range doc.Players {
		rows = append(rows, row{ID: id, Name: p.Name, Age: p.Age, InitialQuota: p.InitialQuota})
	}
	sort.Slice(rows, func(i, j int) bool {
		ni, nj := strings.ToLower(rows[i].Name), strings.ToLower(rows[j].Name)
		if ni != nj {
			return ni < nj
		}
		return rows[i].ID < rows[j].ID
	})
	return c.JSON(rows)
}

// CreatePlayer is the manual "add as new" path: it always creates a fresh
// identity, even when the name already exists on the roster. The existing_id
// field in the response flags the collision for the admin UI.
func (s *PlayerService) CreatePlayer(c *fiber.Ctx) error {
	type Req struct {
		Name         string `json:"name"`
		Age          int    `json:"age"`
		InitialQuota int    `json:"initial_quota"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	if req.Age <= 0 {
		req.Age = models.DefaultAge
	}
	if req.InitialQuota <= 0 {
		req.InitialQuota = models.DefaultInitialQuota
	}

	id := uuid.NewString()
	var existingID string
	_, err := s.Store.Update(func(doc *models.Document) error {
		existingID = doc.NameIndex()[strings.ToLower(name)]
		doc.Players[id] = models.PlayerRecord{
			Name:         utils.TitleCase(name),
			Age:          req.Age,
			InitialQuota: req.InitialQuota,
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR creating player: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to create player"})
	}

	resp := fiber.Map{
		"id":            id,
		"name":          utils.TitleCase(name),
		"age":           req.Age,
		"initial_quota": req.InitialQuota,
	}
	if existingID != "" {
		resp["existing_id"] = existingID
	}
	return c.Status(201).JSON(resp)
}

func (s *PlayerService) UpdatePlayer(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		Name         *string `json:"name"`
		Age          *int    `json:"age"`
		InitialQuota *int    `json:"initial_quota"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var updated models.PlayerRecord
	_, err := s.Store.Update(func(doc *models.Document) error {
		p, ok := doc.Players[id]
		if !ok {
			return errNotFound
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			p.Name = utils.TitleCase(strings.TrimSpace(*req.Name))
		}
		if req.Age != nil && *req.Age > 0 {
			p.Age = *req.Age
		}
		if req.InitialQuota != nil && *req.InitialQuota > 0 {
			p.InitialQuota = *req.InitialQuota
		}
		doc.Players[id] = p
		updated = p
		return nil
	})
	if err == errNotFound {
		return c.Status(404).JSON(fiber.Map{"error": "player not found"})
	}
	if err != nil {
		log.Printf("ERROR updating player %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to update player"})
	}
	return c.JSON(fiber.Map{
		"id":            id,
		"name":          updated.Name,
		"age":           updated.Age,
		"initial_quota": updated.InitialQuota,
	})
}

// DeletePlayer removes the identity and cascades: the player's entries are
// removed from every tournament's results.
func (s *PlayerService) DeletePlayer(c *fiber.Ctx) error {
	id := c.Params("id")
	_, err := s.Store.Update(func(doc *models.Document) error {
		if _, ok := doc.Players[id]; !ok {
			return errNotFound
		}
		delete(doc.Players, id)
		for tid, t := range doc.Tournaments {
			if _, ok := t.Results[id]; ok {
				delete(t.Results, id)
				doc.Tournaments[tid] = t
			}
		}
		return nil
	})
	if err == errNotFound {
		return c.Status(404).JSON(fiber.Map{"error": "player not found"})
	}
	if err != nil {
		log.Printf("ERROR deleting player %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete player"})
	}
	return c.JSON(fiber.Map{"message": "player deleted"})
}
