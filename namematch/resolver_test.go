package namematch

import "testing"

func testRoster() map[string]string {
	return map[string]string{
		"p1": "John Smith",
		"p2": "Mary Johnson",
		"p3": "José Álvarez",
	}
}

func TestResolveExact(t *testing.T) {
	r := NewResolver(testRoster(), 0)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"identical", "John Smith", "p1"},
		{"case insensitive", "JOHN SMITH", "p1"},
		{"extra whitespace", "  John   Smith ", "p1"},
		{"token order ignored", "Smith John", "p1"},
		{"accent folded", "Jose Alvarez", "p3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := r.Resolve(tt.raw)
			if !ok {
				t.Fatalf("Resolve(%q) not accepted, score=%d", tt.raw, match.Score)
			}
			if match.PlayerID != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.raw, match.PlayerID, tt.want)
			}
			if match.Score != 100 {
				t.Errorf("Resolve(%q) score = %d, want 100", tt.raw, match.Score)
			}
		})
	}
}

func TestResolveFuzzy(t *testing.T) {
	r := NewResolver(testRoster(), 0)

	// One dropped letter stays above the strict threshold.
	match, ok := r.Resolve("Jon Smith")
	if !ok {
		t.Fatalf("Resolve(\"Jon Smith\") not accepted, score=%d", match.Score)
	}
	if match.PlayerID != "p1" {
		t.Errorf("Resolve(\"Jon Smith\") = %s, want p1", match.PlayerID)
	}

	// A different first name falls below it but still suggests the closest
	// candidate for the correction workflow.
	match, ok = r.Resolve("Jane Smith")
	if ok {
		t.Fatalf("Resolve(\"Jane Smith\") accepted at score %d, want suggestion only", match.Score)
	}
	if match.Name != "John Smith" {
		t.Errorf("suggestion = %q, want \"John Smith\"", match.Name)
	}
	if match.Score >= DefaultThreshold {
		t.Errorf("suggestion score = %d, must be below %d", match.Score, DefaultThreshold)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver(testRoster(), 0)
	first, _ := r.Resolve("Jon Smith")
	for i := 0; i < 10; i++ {
		again, _ := r.Resolve("Jon Smith")
		if again != first {
			t.Fatalf("Resolve not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestResolveDuplicateNamesSmallestID(t *testing.T) {
	r := NewResolver(map[string]string{
		"zz": "Alex Gray",
		"aa": "Alex Gray",
	}, 0)
	match, ok := r.Resolve("Alex Gray")
	if !ok {
		t.Fatal("expected exact match")
	}
	if match.PlayerID != "aa" {
		t.Errorf("duplicate name resolved to %s, want aa", match.PlayerID)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	r := NewResolver(testRoster(), 0)
	if _, ok := r.Resolve("   "); ok {
		t.Error("whitespace-only name must not match")
	}
	empty := NewResolver(nil, 0)
	if _, ok := empty.Resolve("John Smith"); ok {
		t.Error("empty roster must not match")
	}
}

func TestThresholdOverride(t *testing.T) {
	strict := NewResolver(testRoster(), 0)
	lenient := NewResolver(testRoster(), 70)

	if _, ok := strict.Resolve("Jane Smith"); ok {
		t.Error("strict threshold must reject Jane Smith")
	}
	if match, ok := lenient.Resolve("Jane Smith"); !ok {
		t.Errorf("lenient threshold must accept Jane Smith, score=%d", match.Score)
	}
	if strict.Threshold() != DefaultThreshold {
		t.Errorf("Threshold() = %d, want %d", strict.Threshold(), DefaultThreshold)
	}
}

func TestExactID(t *testing.T) {
	r := NewResolver(testRoster(), 0)
	if id, ok := r.ExactID("mary johnson"); !ok || id != "p2" {
		t.Errorf("ExactID(\"mary johnson\") = %q,%v, want p2,true", id, ok)
	}
	// ExactID never fuzzes.
	if _, ok := r.ExactID("Mary Jonson"); ok {
		t.Error("ExactID must not fuzzy-match")
	}
}

func TestAdd(t *testing.T) {
	r := NewResolver(testRoster(), 0)
	r.Add("Pat Doyle", "p9")

	if id, ok := r.ExactID("pat doyle"); !ok || id != "p9" {
		t.Fatalf("ExactID after Add = %q,%v, want p9,true", id, ok)
	}
	match, ok := r.Resolve("Pat Doyle")
	if !ok || match.PlayerID != "p9" {
		t.Errorf("Resolve after Add = %+v,%v, want p9 accepted", match, ok)
	}
}

func TestFold(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  John   Smith ", "john smith"},
		{"José Álvarez", "jose alvarez"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"john smith", "jon smith"},
		{"john smith", "zzz"},
		{"a", "a"},
		{"", "john"},
	}
	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		if s < 0 || s > 100 {
			t.Errorf("Similarity(%q, %q) = %d, out of range", p[0], p[1], s)
		}
	}
	if Similarity("john smith", "john smith") != 100 {
		t.Error("identical strings must score 100")
	}
	if Similarity("", "john") != 0 {
		t.Error("empty string must score 0")
	}
}
