// Package ingest turns one batch of uploaded result rows into document
// mutations: tournament dedup, player identity resolution with manual
// corrections, score coercion, and last-row-wins result writes. It operates on
// a document snapshot passed in explicitly and never touches persistence.
package ingest

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golf-quota-tracker/models"
	"golf-quota-tracker/namematch"
	"golf-quota-tracker/utils"

	"github.com/google/uuid"
)

// ErrMissingColumns is the structural validation failure: the batch aborts
// before any mutation.
var ErrMissingColumns = errors.New("missing required columns")

// Correction is the admin's decision for one raw name that fuzzy matching
// could not settle. FinalName is authoritative; Skip drops the name's rows.
type Correction struct {
	FinalName string `json:"final_name"`
	Skip      bool   `json:"skip"`
}

// Summary reports what one batch did, even on partial success.
type Summary struct {
	Applied            int `json:"applied"`
	TournamentsCreated int `json:"tournaments_created"`
	PlayersCreated     int `json:"players_created"`
	Skipped            int `json:"skipped"`
}

// Suggestion is one unresolved raw name with the best roster candidate, for
// the correction step of the upload workflow.
type Suggestion struct {
	Raw        string `json:"raw"`
	Suggested  string `json:"suggested"`
	PlayerID   string `json:"player_id,omitempty"`
	Confidence int    `json:"confidence"`
}

// Options tunes one batch.
type Options struct {
	NameOverride  string              // overrides every row's tournament name
	DateOverride  string              // ISO date; overrides every row's date
	Threshold     int                 // fuzzy acceptance threshold, 0 = default
	NewID         func() string       // player id generator, nil = uuid
	CanonicalName func(string) string // display casing for created players, nil = as typed
}

type columnMap struct {
	tournament int
	player     int
	date       int // -1 when absent
	scores     []int
}

// mapColumns validates the header. tournament_name, player_name and at least
// one round_N column are required; tournament_date is optional.
func mapColumns(header []string) (columnMap, error) {
	cm := columnMap{tournament: -1, player: -1, date: -1}
	type scoreCol struct{ order, idx int }
	var scoreCols []scoreCol
	for i, h := range header {
		switch key := strings.ToLower(strings.TrimSpace(h)); {
		case key == "tournament_name":
			cm.tournament = i
		case key == "player_name":
			cm.player = i
		case key == "tournament_date":
			cm.date = i
		case strings.HasPrefix(key, "round_"):
			if n, err := strconv.Atoi(key[len("round_"):]); err == nil {
				scoreCols = append(scoreCols, scoreCol{order: n, idx: i})
			}
		}
	}
	sort.Slice(scoreCols, func(i, j int) bool { return scoreCols[i].order < scoreCols[j].order })
	for _, sc := range scoreCols {
		cm.scores = append(cm.scores, sc.idx)
	}

	var missing []string
	if cm.tournament < 0 {
		missing = append(missing, "tournament_name")
	}
	if cm.player < 0 {
		missing = append(missing, "player_name")
	}
	if len(cm.scores) == 0 {
		missing = append(missing, "round_1")
	}
	if len(missing) > 0 {
		return cm, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return cm, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// Preview scans a batch without mutating anything and returns the raw names
// that need admin attention, each with the best candidate as a suggestion.
// Names that match at or above the threshold are settled and not surfaced.
func Preview(doc *models.Document, header []string, records [][]string, threshold int) ([]Suggestion, error) {
	cm, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	roster := make(map[string]string, len(doc.Players))
	for id, p := range doc.Players {
		roster[id] = p.Name
	}
	resolver := namematch.NewResolver(roster, threshold)

	seen := map[string]bool{}
	var out []Suggestion
	for _, record := range records {
		raw := cell(record, cm.player)
		if raw == "" || seen[raw] {
			continue
		}
		seen[raw] = true
		match, ok := resolver.Resolve(raw)
		if ok {
			continue
		}
		out = append(out, Suggestion{
			Raw:        raw,
			Suggested:  match.Name,
			PlayerID:   match.PlayerID,
			Confidence: match.Score,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Raw) < strings.ToLower(out[j].Raw)
	})
	return out, nil
}

// Apply runs one batch against the document snapshot. Structural validation
// failures abort before any mutation; after that every row is best effort.
// Within the batch, later rows for the same (tournament, player) pair replace
// earlier ones.
func Apply(doc *models.Document, header []string, records [][]string, corrections map[string]Correction, opts Options) (Summary, error) {
	cm, err := mapColumns(header)
	if err != nil {
		return Summary{}, err
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.CanonicalName == nil {
		opts.CanonicalName = func(s string) string { return s }
	}

	roster := make(map[string]string, len(doc.Players))
	for id, p := range doc.Players {
		roster[id] = p.Name
	}
	resolver := namematch.NewResolver(roster, opts.Threshold)

	var sum Summary
	for _, record := range records {
		tname := opts.NameOverride
		if tname == "" {
			tname = cell(record, cm.tournament)
		}
		if tname == "" {
			sum.Skipped++
			continue
		}

		date := opts.DateOverride
		if date == "" {
			date = utils.MMDDYYYYToISO(cell(record, cm.date))
		}

		// The event is upserted before the player is resolved, so a row that
		// is later skipped still registers its tournament.
		key := models.TournamentKey(tname, date)
		if _, ok := doc.Tournaments[key]; !ok {
			doc.Tournaments[key] = models.TournamentRecord{
				Name:    tname,
				Date:    date,
				Results: map[string]models.ScoreList{},
			}
			sum.TournamentsCreated++
		}

		rawName := cell(record, cm.player)
		if rawName == "" {
			sum.Skipped++
			continue
		}

		finalName := rawName
		corrected := false
		if c, ok := corrections[rawName]; ok {
			if c.Skip {
				sum.Skipped++
				continue
			}
			corrected = true
			if strings.TrimSpace(c.FinalName) != "" {
				finalName = strings.TrimSpace(c.FinalName)
			}
		}

		pid := resolvePlayer(doc, resolver, finalName, corrected, &sum, opts)

		scores := make(models.ScoreList, 0, len(cm.scores))
		for _, idx := range cm.scores {
			f, err := strconv.ParseFloat(cell(record, idx), 64)
			if err != nil {
				f = 0.0
			}
			scores = append(scores, f)
		}

		doc.Tournaments[key].Results[pid] = scores
		sum.Applied++
	}
	return sum, nil
}

// resolvePlayer maps a final name to an existing id, exact first, then an
// accepted fuzzy match, or creates the player exactly once per distinct name
// in the batch. Corrected names are authoritative: exact match or create,
// never fuzzy, so an admin's decision cannot be rerouted to a lookalike.
func resolvePlayer(doc *models.Document, resolver *namematch.Resolver, finalName string, corrected bool, sum *Summary, opts Options) string {
	if id, ok := resolver.ExactID(finalName); ok {
		return id
	}
	if !corrected {
		if match, ok := resolver.Resolve(finalName); ok {
			return match.PlayerID
		}
	}
	id := opts.NewID()
	display := opts.CanonicalName(finalName)
	doc.Players[id] = models.PlayerRecord{
		Name:         display,
		Age:          models.DefaultAge,
		InitialQuota: models.DefaultInitialQuota,
	}
	resolver.Add(display, id)
	sum.PlayersCreated++
	return id
}
