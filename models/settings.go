package models

import "time"

// Setting is a single key/value pair from the settings section of the
// document (currently only the admin PIN).
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SettingAdminPIN is the settings key holding the admin login PIN.
const SettingAdminPIN = "admin_pin"
