package models

import (
	"time"
)

// Player is a club member identity record. The ID is an opaque uuid and never
// changes; display name casing is canonical, matching is case-insensitive.
type Player struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null;index"`
	Age          int       `json:"age" gorm:"default:65"`
	InitialQuota int       `json:"initial_quota" gorm:"default:18"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

const (
	// DefaultAge and DefaultInitialQuota are assigned to players created
	// through ingestion when the row carries no member profile.
	DefaultAge          = 65
	DefaultInitialQuota = 18
)

// TeeForAge maps a player's age to the tee category shown on the board.
// Unrelated to quota math.
func TeeForAge(age int) string {
	if age <= 0 {
		age = DefaultAge
	}
	switch {
	case age >= 70:
		return "Gold"
	case age >= 60:
		return "White"
	default:
		return "Blue"
	}
}
