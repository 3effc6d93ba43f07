package services

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"golf-quota-tracker/ingest"
	"golf-quota-tracker/models"
	"golf-quota-tracker/namematch"
	"golf-quota-tracker/utils"

	"github.com/gofiber/fiber/v2"
)

const uploadTemplate = "Tournament_Name,Player_Name,Round_1,Round_2,Round_3,Tournament_Date\n" +
	"Spring Championship,John Smith,8,12,7,03/15/2024\n" +
	"Spring Championship,Mary Johnson,15,18,14,03/15/2024\n" +
	"Spring Championship,Bob Wilson,6,9,11,03/15/2024\n"

// UploadService runs the CSV upload workflow: template download, a preview
// pass that surfaces unmatched player names, and the apply pass that commits
// the batch with the admin's corrections.
type UploadService struct {
	Store     *DocumentStore
	Threshold int // fuzzy acceptance threshold, 0 = namematch default
}

func NewUploadService(store *DocumentStore, threshold int) *UploadService {
	if threshold <= 0 {
		threshold = namematch.DefaultThreshold
	}
	return &UploadService{Store: store, Threshold: threshold}
}

// GetTemplate serves the CSV template members download before their first
// upload.
func (s *UploadService) GetTemplate(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="tournament_results_template.csv"`)
	return c.SendString(uploadTemplate)
}

// PreviewUpload parses the CSV and reports which player names need attention
// before the batch can be applied. Nothing is written.
func (s *UploadService) PreviewUpload(c *fiber.Ctx) error {
	header, records, err := s.readCSV(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	doc, err := s.Store.Load()
	if err != nil {
		log.Printf("ERROR loading document for upload preview: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	unmatched, err := ingest.Preview(doc, header, records, s.Threshold)
	if err != nil {
		if errors.Is(err, ingest.ErrMissingColumns) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "preview failed"})
	}
	return c.JSON(fiber.Map{
		"rows":      len(records),
		"unmatched": unmatched,
		"threshold": s.Threshold,
	})
}

// ApplyUpload commits the batch. Form fields: file (CSV), corrections
// (JSON map raw name → {final_name, skip}), optional tournament_name and
// tournament_date overriding the CSV columns. Missing required columns abort
// the whole batch before any write; after that it is best effort per row.
func (s *UploadService) ApplyUpload(c *fiber.Ctx) error {
	header, records, err := s.readCSV(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	corrections := map[string]ingest.Correction{}
	if raw := c.FormValue("corrections"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &corrections); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid corrections JSON"})
		}
	}

	opts := ingest.Options{
		NameOverride:  strings.TrimSpace(c.FormValue("tournament_name")),
		DateOverride:  utils.MMDDYYYYToISO(c.FormValue("tournament_date")),
		Threshold:     s.Threshold,
		CanonicalName: utils.TitleCase,
	}

	var summary ingest.Summary
	_, err = s.Store.Update(func(doc *models.Document) error {
		summary, err = ingest.Apply(doc, header, records, corrections, opts)
		return err
	})
	if err != nil {
		if errors.Is(err, ingest.ErrMissingColumns) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("ERROR applying upload: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to apply upload"})
	}
	return c.JSON(summary)
}

// readCSV pulls the multipart "file" field and parses it into a header row
// plus records. Ragged rows are tolerated; the pipeline treats missing cells
// as empty.
func (s *UploadService) readCSV(c *fiber.Ctx) ([]string, [][]string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("CSV file is required")
	}
	return parseCSV(fileHeader)
}

func parseCSV(fileHeader *multipart.FileHeader) ([]string, [][]string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, record)
	}
	return header, records, nil
}
