package services

import (
	"testing"

	"golf-quota-tracker/models"
	"golf-quota-tracker/quota"
)

func TestBoardRows(t *testing.T) {
	doc := models.NewDocument()
	doc.Players["p1"] = models.PlayerRecord{Name: "John Smith", Age: 72, InitialQuota: 18}
	doc.Players["p2"] = models.PlayerRecord{Name: "Amy Cole", Age: 45, InitialQuota: 20}
	doc.Tournaments["spring-open|2024-03-15"] = models.TournamentRecord{
		Name: "Spring Open",
		Date: "2024-03-15",
		Results: map[string]models.ScoreList{
			"p1": {12, 14, 13},
		},
	}

	s := &BoardService{Policy: quota.DefaultPolicy()}
	rows := s.boardRows(doc)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Sorted by upper-cased name: AMY COLE before JOHN SMITH.
	if rows[0].Player != "AMY COLE" || rows[1].Player != "JOHN SMITH" {
		t.Errorf("order = %q, %q, want AMY COLE then JOHN SMITH", rows[0].Player, rows[1].Player)
	}

	amy, john := rows[0], rows[1]
	if amy.Rounds != 0 || amy.CurrentQuota != 20 {
		t.Errorf("player with no rounds: %+v, want 0 rounds at the initial quota 20", amy)
	}
	if amy.Tees != "Blue" {
		t.Errorf("tees for age 45 = %q, want Blue", amy.Tees)
	}
	if john.Rounds != 3 || john.CurrentQuota != 13 { // mean 39/3 = 13
		t.Errorf("john = %+v, want 3 rounds quota 13", john)
	}
	if john.Tees != "Gold" {
		t.Errorf("tees for age 72 = %q, want Gold", john.Tees)
	}
}

func TestBoardRowsStableOnNameTie(t *testing.T) {
	doc := models.NewDocument()
	doc.Players["zz"] = models.PlayerRecord{Name: "Sam Reed", InitialQuota: 18}
	doc.Players["aa"] = models.PlayerRecord{Name: "Sam Reed", InitialQuota: 18}

	s := &BoardService{Policy: quota.DefaultPolicy()}
	for i := 0; i < 5; i++ {
		rows := s.boardRows(doc)
		if rows[0].PlayerID != "aa" || rows[1].PlayerID != "zz" {
			t.Fatalf("tie order not deterministic: %s, %s", rows[0].PlayerID, rows[1].PlayerID)
		}
	}
}
