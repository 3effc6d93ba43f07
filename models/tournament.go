package models

import (
	"time"

	"github.com/gosimple/slug"
)

// Tournament is one club event. The ID is the deduplication key derived from
// the normalized name and (when present) the ISO date, so re-uploading the
// same event merges into the existing record instead of duplicating it.
type Tournament struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Date      string    `json:"date"` // ISO YYYY-MM-DD, or "" when unknown
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Results []TournamentResult `json:"results,omitempty" gorm:"foreignKey:TournamentID"`
}

// TournamentResult holds one player's ordered score list for one tournament.
// Unique per (tournament, player): writing again overwrites, never accumulates.
type TournamentResult struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	TournamentID string    `json:"tournament_id" gorm:"not null;uniqueIndex:idx_tournament_player"`
	PlayerID     string    `json:"player_id" gorm:"not null;uniqueIndex:idx_tournament_player"`
	Scores       ScoreList `json:"scores" gorm:"serializer:json"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TournamentKey derives the dedup key for an event. Two uploads with the same
// normalized name and date land on the same key.
func TournamentKey(name, isoDate string) string {
	key := slug.Make(name)
	if isoDate != "" {
		return key + "|" + isoDate
	}
	return key
}
