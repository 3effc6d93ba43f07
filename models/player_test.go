package models

import "testing"

func TestTeeForAge(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{75, "Gold"},
		{70, "Gold"},
		{69, "White"},
		{60, "White"},
		{59, "Blue"},
		{30, "Blue"},
		{0, "White"},  // unknown age treated as the default 65
		{-5, "White"},
	}
	for _, tt := range tests {
		if got := TeeForAge(tt.age); got != tt.want {
			t.Errorf("TeeForAge(%d) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestTournamentKey(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"Spring Open", "2024-03-15", "spring-open|2024-03-15"},
		{"Spring  Open!", "2024-03-15", "spring-open|2024-03-15"},
		{"SPRING OPEN", "2024-03-15", "spring-open|2024-03-15"},
		{"Twilight Nine", "", "twilight-nine"},
	}
	for _, tt := range tests {
		if got := TournamentKey(tt.name, tt.date); got != tt.want {
			t.Errorf("TournamentKey(%q, %q) = %q, want %q", tt.name, tt.date, got, tt.want)
		}
	}
}
