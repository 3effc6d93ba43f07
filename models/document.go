package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is the full dataset as one in-memory snapshot: the shape the
// backup/restore endpoints speak, and the shape every core computation
// receives. Quotas are never stored on it — they are recomputed from the raw
// rounds at read time.
type Document struct {
	Players     map[string]PlayerRecord     `json:"players"`
	Tournaments map[string]TournamentRecord `json:"tournaments"`
	Settings    map[string]string           `json:"settings"`
}

type PlayerRecord struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	InitialQuota int    `json:"initial_quota"`
}

type TournamentRecord struct {
	Name    string               `json:"name"`
	Date    string               `json:"date"`
	Results map[string]ScoreList `json:"results"`
}

// ScoreList decodes leniently: numbers, numeric strings, and null are all
// accepted, anything unparsable becomes 0. A bad cell in a restored backup
// must never fail the whole document.
type ScoreList []float64

func (s *ScoreList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an array at all: treat as a single value.
		*s = ScoreList{coerceScore(data)}
		return nil
	}
	out := make(ScoreList, 0, len(raw))
	for _, cell := range raw {
		out = append(out, coerceScore(cell))
	}
	*s = out
	return nil
}

func coerceScore(cell []byte) float64 {
	cell = bytes.TrimSpace(cell)
	if len(cell) == 0 || bytes.Equal(cell, []byte("null")) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(cell, &f); err == nil {
		return f
	}
	var str string
	if err := json.Unmarshal(cell, &str); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			return f
		}
	}
	return 0
}

// NewDocument returns an empty document with all sections allocated.
func NewDocument() *Document {
	return &Document{
		Players:     map[string]PlayerRecord{},
		Tournaments: map[string]TournamentRecord{},
		Settings:    map[string]string{},
	}
}

// NameIndex builds the case-insensitive display-name → player-id lookup.
// Rebuilt from the document on every load, never persisted. On a (bad) name
// collision the lexicographically smallest id wins so lookups stay
// deterministic.
func (d *Document) NameIndex() map[string]string {
	idx := make(map[string]string, len(d.Players))
	for id, p := range d.Players {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if key == "" {
			continue
		}
		if existing, ok := idx[key]; !ok || id < existing {
			idx[key] = id
		}
	}
	return idx
}

// ParseDocument decodes a backup payload into the canonical document model.
// Legacy exports stored players and tournaments as arrays; those are migrated
// here, before any core component sees the data. newID supplies ids for legacy
// players that carried none.
func ParseDocument(raw []byte, newID func() string) (*Document, error) {
	var envelope struct {
		Players     json.RawMessage   `json:"players"`
		Tournaments json.RawMessage   `json:"tournaments"`
		Settings    map[string]string `json:"settings"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if envelope.Players == nil || envelope.Tournaments == nil {
		return nil, fmt.Errorf("invalid format: missing 'players'/'tournaments'")
	}

	doc := NewDocument()
	if envelope.Settings != nil {
		doc.Settings = envelope.Settings
	}

	if err := parsePlayers(envelope.Players, doc, newID); err != nil {
		return nil, err
	}
	if err := parseTournaments(envelope.Tournaments, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func parsePlayers(raw json.RawMessage, doc *Document, newID func() string) error {
	if isJSONArray(raw) {
		var legacy []struct {
			ID string `json:"id"`
			PlayerRecord
		}
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return fmt.Errorf("invalid legacy players array: %w", err)
		}
		for _, p := range legacy {
			id := p.ID
			if id == "" {
				id = newID()
			}
			doc.Players[id] = p.PlayerRecord
		}
		return nil
	}
	if err := json.Unmarshal(raw, &doc.Players); err != nil {
		return fmt.Errorf("invalid players: %w", err)
	}
	return nil
}

func parseTournaments(raw json.RawMessage, doc *Document) error {
	if isJSONArray(raw) {
		var legacy []TournamentRecord
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return fmt.Errorf("invalid legacy tournaments array: %w", err)
		}
		for _, t := range legacy {
			if t.Results == nil {
				t.Results = map[string]ScoreList{}
			}
			doc.Tournaments[TournamentKey(t.Name, t.Date)] = t
		}
		return nil
	}
	if err := json.Unmarshal(raw, &doc.Tournaments); err != nil {
		return fmt.Errorf("invalid tournaments: %w", err)
	}
	for id, t := range doc.Tournaments {
		if t.Results == nil {
			t.Results = map[string]ScoreList{}
			doc.Tournaments[id] = t
		}
	}
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
