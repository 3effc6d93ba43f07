package utils

import "testing"

func TestMMDDYYYYToISO(t *testing.T) {
	tests := []struct{ in, want string }{
		{"03/15/2024", "2024-03-15"},
		{"12/01/2023", "2023-12-01"},
		{" 03/15/2024 ", "2024-03-15"},
		{"2024-03-15", "2024-03-15"}, // already ISO passes through
		{"13/45/2024", ""},
		{"March 15", ""},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := MMDDYYYYToISO(tt.in); got != tt.want {
			t.Errorf("MMDDYYYYToISO(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"mary  johnson", "Mary Johnson"},
		{"JOHN SMITH", "John Smith"},
		{" pat  o doyle ", "Pat O Doyle"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
