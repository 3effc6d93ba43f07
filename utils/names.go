package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TitleCase returns the canonical display casing for a player name
// ("mary  johnson" → "Mary Johnson").
func TitleCase(name string) string {
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}
