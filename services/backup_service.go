package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"golf-quota-tracker/models"
	"golf-quota-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BackupService exports and restores the full document, and pushes snapshots
// to R2.
type BackupService struct {
	Store *DocumentStore
}

func NewBackupService(store *DocumentStore) *BackupService {
	return &BackupService{Store: store}
}

// Download serves the canonical JSON document as an attachment.
func (s *BackupService) Download(c *fiber.Ctx) error {
	doc, err := s.Store.Load()
	if err != nil {
		log.Printf("ERROR loading document for backup: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to encode backup"})
	}
	c.Set("Content-Type", "application/json")
	c.Set("Content-Disposition", `attachment; filename="golf_data.json"`)
	return c.Send(raw)
}

// Restore replaces the whole dataset from an uploaded backup. Legacy
// array-shaped exports are migrated before anything is written; a payload
// missing the players or tournaments section is rejected untouched.
func (s *BackupService) Restore(c *fiber.Ctx) error {
	raw := c.Body()
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "failed to open upload"})
		}
		defer file.Close()
		buf, err := io.ReadAll(file)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "failed to read upload"})
		}
		raw = buf
	}
	if len(raw) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "backup JSON is required"})
	}

	doc, err := models.ParseDocument(raw, uuid.NewString)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.Store.Replace(doc); err != nil {
		log.Printf("ERROR restoring document: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to persist restored data"})
	}
	return c.JSON(fiber.Map{
		"message":     "data restored",
		"players":     len(doc.Players),
		"tournaments": len(doc.Tournaments),
	})
}

// PushToR2 uploads a timestamped snapshot to the backup bucket immediately.
func (s *BackupService) PushToR2(c *fiber.Ctx) error {
	url, err := s.Snapshot()
	if err != nil {
		log.Printf("ERROR pushing backup to R2: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to push backup"})
	}
	return c.JSON(fiber.Map{"message": "backup uploaded", "url": url})
}

// Snapshot marshals the current document and uploads it. Shared by the
// on-demand endpoint and the periodic worker.
func (s *BackupService) Snapshot() (string, error) {
	doc, err := s.Store.Load()
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("backups/golf_data_%s.json", time.Now().UTC().Format("20060102T150405"))
	return utils.UploadBackup(key, raw)
}
