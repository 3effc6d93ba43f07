package services

import (
	"fmt"
	"sync"

	"golf-quota-tracker/models"

	"gorm.io/gorm"
)

// DocumentStore is the persistence collaborator. The whole dataset is read
// into one models.Document snapshot and written back wholesale in one
// transaction — the document model the rest of the system is specified
// against. A single-writer mutex serializes load-mutate-save so two admin
// sessions cannot silently lose each other's updates.
type DocumentStore struct {
	DB *gorm.DB
	mu sync.Mutex
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{DB: db}
}

// Load reads the full dataset into a fresh snapshot. Read-only callers can
// use it directly; writers go through Update.
func (s *DocumentStore) Load() (*models.Document, error) {
	doc := models.NewDocument()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var players []models.Player
		if err := tx.Find(&players).Error; err != nil {
			return err
		}
		for _, p := range players {
			doc.Players[p.ID] = models.PlayerRecord{
				Name:         p.Name,
				Age:          p.Age,
				InitialQuota: p.InitialQuota,
			}
		}

		var tournaments []models.Tournament
		if err := tx.Preload("Results").Find(&tournaments).Error; err != nil {
			return err
		}
		for _, t := range tournaments {
			rec := models.TournamentRecord{
				Name:    t.Name,
				Date:    t.Date,
				Results: map[string]models.ScoreList{},
			}
			for _, r := range t.Results {
				rec.Results[r.PlayerID] = r.Scores
			}
			doc.Tournaments[t.ID] = rec
		}

		var settings []models.Setting
		if err := tx.Find(&settings).Error; err != nil {
			return err
		}
		for _, st := range settings {
			doc.Settings[st.Key] = st.Value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}

// Update runs one load-mutate-save cycle under the writer lock. fn mutates
// the snapshot it is given; the result replaces the stored document
// wholesale. An error from fn aborts without writing.
func (s *DocumentStore) Update(fn func(doc *models.Document) error) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Replace swaps in a complete document (restore path). Last writer wins at
// document level — the documented behavior for restores.
func (s *DocumentStore) Replace(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

func (s *DocumentStore) save(doc *models.Document) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := wipe.Delete(&models.TournamentResult{}).Error; err != nil {
			return err
		}
		if err := wipe.Delete(&models.Tournament{}).Error; err != nil {
			return err
		}
		if err := wipe.Delete(&models.Player{}).Error; err != nil {
			return err
		}
		if err := wipe.Delete(&models.Setting{}).Error; err != nil {
			return err
		}

		for id, p := range doc.Players {
			row := models.Player{ID: id, Name: p.Name, Age: p.Age, InitialQuota: p.InitialQuota}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for id, t := range doc.Tournaments {
			row := models.Tournament{ID: id, Name: t.Name, Date: t.Date}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			for pid, scores := range t.Results {
				res := models.TournamentResult{
					// Deterministic id: re-saving the same pair stays one row.
					ID:           id + "|" + pid,
					TournamentID: id,
					PlayerID:     pid,
					Scores:       scores,
				}
				if err := tx.Create(&res).Error; err != nil {
					return err
				}
			}
		}
		for key, value := range doc.Settings {
			if err := tx.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
