package models_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"golf-quota-tracker/models"
	"golf-quota-tracker/quota"
)

func sampleDocument() *models.Document {
	doc := models.NewDocument()
	doc.Players["p1"] = models.PlayerRecord{Name: "John Smith", Age: 72, InitialQuota: 18}
	doc.Players["p2"] = models.PlayerRecord{Name: "Mary Johnson", Age: 58, InitialQuota: 20}
	doc.Tournaments[models.TournamentKey("Spring Open", "2024-03-15")] = models.TournamentRecord{
		Name: "Spring Open",
		Date: "2024-03-15",
		Results: map[string]models.ScoreList{
			"p1": {12, 14, 13},
			"p2": {9, 8, 10},
		},
	}
	doc.Tournaments[models.TournamentKey("Club Championship", "2024-05-01")] = models.TournamentRecord{
		Name: "Club Championship",
		Date: "2024-05-01",
		Results: map[string]models.ScoreList{
			"p1": {15, 11},
		},
	}
	doc.Settings["admin_pin"] = "1234"
	return doc
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := sampleDocument()

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := models.ParseDocument(raw, func() string { return "unused" })
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(doc.Players, restored.Players) {
		t.Errorf("players changed across round trip:\n%v\n%v", doc.Players, restored.Players)
	}
	if !reflect.DeepEqual(doc.Tournaments, restored.Tournaments) {
		t.Errorf("tournaments changed across round trip")
	}
	if !reflect.DeepEqual(doc.Settings, restored.Settings) {
		t.Errorf("settings changed across round trip")
	}

	// The property admins actually care about: quotas computed before and
	// after a backup cycle are identical.
	before := quota.AggregateRounds(doc.Tournaments)
	after := quota.AggregateRounds(restored.Tournaments)
	for id, p := range doc.Players {
		a := quota.CurrentQuota(before[id], p.InitialQuota, quota.DefaultPolicy())
		b := quota.CurrentQuota(after[id], restored.Players[id].InitialQuota, quota.DefaultPolicy())
		if a != b {
			t.Errorf("player %s quota %d before, %d after restore", id, a, b)
		}
	}
}

func TestParseDocumentRejectsMissingSections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "not json at all"},
		{"missing tournaments", `{"players": {}}`},
		{"missing players", `{"tournaments": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := models.ParseDocument([]byte(tt.raw), nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseDocumentLegacyArrays(t *testing.T) {
	raw := []byte(`{
		"players": [
			{"id": "p1", "name": "John Smith", "age": 72, "initial_quota": 18},
			{"name": "Mary Johnson", "age": 58, "initial_quota": 20}
		],
		"tournaments": [
			{"name": "Spring Open", "date": "2024-03-15", "results": {"p1": [12, 14, 13]}},
			{"name": "Twilight Nine", "date": ""}
		]
	}`)

	n := 0
	doc, err := models.ParseDocument(raw, func() string { n++; return fmt.Sprintf("gen-%d", n) })
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := doc.Players["p1"]; !ok {
		t.Error("legacy player with an id must keep it")
	}
	if p, ok := doc.Players["gen-1"]; !ok || p.Name != "Mary Johnson" {
		t.Errorf("legacy player without an id must get a generated one, got %v", doc.Players)
	}

	key := models.TournamentKey("Spring Open", "2024-03-15")
	tour, ok := doc.Tournaments[key]
	if !ok {
		t.Fatalf("legacy tournament not keyed as %q; have %v", key, doc.Tournaments)
	}
	if len(tour.Results["p1"]) != 3 {
		t.Errorf("legacy results lost: %v", tour.Results)
	}
	undated := doc.Tournaments[models.TournamentKey("Twilight Nine", "")]
	if undated.Results == nil {
		t.Error("tournaments without results must get an empty map, not nil")
	}
}

func TestScoreListLenientDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.ScoreList
	}{
		{"numbers", `[12, 14.5, 13]`, models.ScoreList{12, 14.5, 13}},
		{"numeric strings", `["12", " 14.5 "]`, models.ScoreList{12, 14.5}},
		{"null and junk become zero", `[null, "abc", {}]`, models.ScoreList{0, 0, 0}},
		{"bare number", `7`, models.ScoreList{7}},
		{"empty array", `[]`, models.ScoreList{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.ScoreList
			if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decoded %s = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNameIndex(t *testing.T) {
	doc := models.NewDocument()
	doc.Players["zz"] = models.PlayerRecord{Name: "John Smith"}
	doc.Players["aa"] = models.PlayerRecord{Name: " JOHN SMITH "}
	doc.Players["p3"] = models.PlayerRecord{Name: ""}
	doc.Players["p4"] = models.PlayerRecord{Name: "Mary Johnson"}

	idx := doc.NameIndex()
	if len(idx) != 2 {
		t.Fatalf("index = %v, want two entries with empty names excluded", idx)
	}
	if idx["mary johnson"] != "p4" {
		t.Errorf("lookup is case-insensitive on the stored name, got %v", idx)
	}
	if idx["john smith"] != "aa" {
		t.Errorf("collision winner = %s, want the smallest id aa", idx["john smith"])
	}
}
