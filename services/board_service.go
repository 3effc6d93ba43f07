package services

import (
	"bytes"
	"encoding/csv"
	"log"
	"sort"
	"strconv"
	"strings"

	"golf-quota-tracker/models"
	"golf-quota-tracker/quota"

	"github.com/gofiber/fiber/v2"
)

// BoardService serves the read-only views: the public board, player lookup,
// the tournament list and the quota report. Quotas are recomputed from raw
// rounds on every request — nothing derived is stored.
type BoardService struct {
	Store  *DocumentStore
	Policy quota.Policy
}

func NewBoardService(store *DocumentStore, policy quota.Policy) *BoardService {
	return &BoardService{Store: store, Policy: policy}
}

type boardRow struct {
	PlayerID     string `json:"player_id"`
	Player       string `json:"player"`
	Tees         string `json:"tees"`
	Rounds       int    `json:"rounds"`
	CurrentQuota int    `json:"current_quota"`
}

func (s *BoardService) boardRows(doc *models.Document) []boardRow {
	roundsByPlayer := quota.AggregateRounds(doc.Tournaments)
	rows := make([]boardRow, 0, len(doc.Players))
	for pid, p := range doc.Players {
		playerRounds := roundsByPlayer[pid]
		rows = append(rows, boardRow{
			PlayerID:     pid,
			Player:       strings.ToUpper(p.Name),
			Tees:         models.TeeForAge(p.Age),
			Rounds:       len(playerRounds),
			CurrentQuota: quota.CurrentQuota(playerRounds, p.InitialQuota, s.Policy),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Player != rows[j].Player {
			return rows[i].Player < rows[j].Player
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	return rows
}

// GetBoard is the public read-only board: name, tees, rounds played, current
// quota, sorted by player.
func (s *BoardService) GetBoard(c *fiber.Ctx) error {
	doc, err := s.Store.Load()
	if err != nil {
		log.Printf("ERROR loading document for board: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	return c.JSON(s.boardRows(doc))
}

// GetPlayerQuota is the lookup view: current quota, the five most recent
// rounds, and the best-6-of-9 breakdown so the computation is transparent.
func (s *BoardService) GetPlayerQuota(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := s.Store.Load()
	if err != nil {
		log.Printf("ERROR loading document for player lookup: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	p, ok := doc.Players[id]
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "player not found"})
	}

	playerRounds := quota.AggregateRounds(doc.Tournaments)[id]
	current := quota.CurrentQuota(playerRounds, p.InitialQuota, s.Policy)
	recentScores, bestKept := quota.BestOfRecent(playerRounds, s.Policy)

	sorted := make([]quota.Round, len(playerRounds))
	copy(sorted, playerRounds)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].Date, sorted[j].Date
		if di == "" {
			return false
		}
		if dj == "" {
			return true
		}
		return di > dj
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	recent := make([]fiber.Map, 0, len(sorted))
	for _, r := range sorted {
		recent = append(recent, fiber.Map{
			"date":       r.Date,
			"tournament": r.TournamentName,
			"score":      r.Score,
		})
	}

	return c.JSON(fiber.Map{
		"player_id":     id,
		"name":          strings.ToUpper(p.Name),
		"tees":          models.TeeForAge(p.Age),
		"initial_quota": p.InitialQuota,
		"current_quota": current,
		"rounds_played": len(playerRounds),
		"recent":        recent,
		"calculation": fiber.Map{
			"recent_scores": recentScores,
			"best_kept":     bestKept,
			"quota":         current,
		},
	})
}

// GetTournaments lists events newest first; undated events sort last.
func (s *BoardService) GetTournaments(c *fiber.Ctx) error {
	doc, err := s.Store.Load()
	if err != nil {
		log.Printf("ERROR loading document for tournament list: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	type row struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Date string `json:"date"`
	}
	rows := make([]row, 0, len(doc.Tournaments))
	for id, t := range doc.Tournaments {
		rows = append(rows, row{ID: id, Name: t.Name, Date: t.Date})
	}
	sort.Slice(rows, func(i, j int) bool {
		di, dj := rows[i].Date, rows[j].Date
		if di != dj {
			if di == "" {
				return false
			}
			if dj == "" {
				return true
			}
			return di > dj
		}
		return rows[i].ID < rows[j].ID
	})
	return c.JSON(rows)
}

// GetQuotaReport is the admin report: same rows as the board, with a CSV
// download when ?format=csv.
func (s *BoardService) GetQuotaReport(c *fiber.Ctx) error {
	doc, err := s.Store.Load()
	if err != nil {
		log.Printf("ERROR loading document for report: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	rows := s.boardRows(doc)
	if c.Query("format") != "csv" {
		return c.JSON(rows)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"PLAYER", "TEES", "ROUNDS", "CURRENT QUOTA"})
	for _, r := range rows {
		_ = w.Write([]string{r.Player, r.Tees, strconv.Itoa(r.Rounds), strconv.Itoa(r.CurrentQuota)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to build CSV"})
	}
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="report_current_quotas.csv"`)
	return c.Send(buf.Bytes())
}
