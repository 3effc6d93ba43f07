// Package namematch maps free-text player names from uploads onto the known
// roster. It is pure computation: build a Resolver from a roster snapshot,
// ask it about raw names, and it will either hand back a confident match or a
// best-effort suggestion for the manual correction workflow.
package namematch

import (
	"sort"
	"strings"

	"github.com/gosimple/unidecode"
	"github.com/xrash/smetrics"
)

// DefaultThreshold is the strict acceptance score. The lenient suggest-only
// mode of the old tool used 70; pass that instead where softer matching is
// wanted.
const DefaultThreshold = 90

// Match is the best roster candidate for a raw name, with its 0-100
// confidence score.
type Match struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

type entry struct {
	folded string
	name   string
	id     string
}

// Resolver matches raw names against a fixed roster snapshot. Candidates are
// kept sorted so repeated calls with the same input always return the same
// decision.
type Resolver struct {
	threshold int
	entries   []entry
}

// NewResolver builds a resolver over roster (player id → display name).
// A threshold <= 0 falls back to DefaultThreshold.
func NewResolver(roster map[string]string, threshold int) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	r := &Resolver{threshold: threshold}
	for id, name := range roster {
		folded := Fold(name)
		if folded == "" {
			continue
		}
		r.entries = append(r.entries, entry{folded: folded, name: name, id: id})
	}
	sort.Slice(r.entries, func(i, j int) bool {
		if r.entries[i].folded != r.entries[j].folded {
			return r.entries[i].folded < r.entries[j].folded
		}
		return r.entries[i].id < r.entries[j].id
	})
	return r
}

// Threshold reports the acceptance threshold in use.
func (r *Resolver) Threshold() int { return r.threshold }

// Resolve finds the best candidate for raw. ok is true only when the score
// reaches the threshold; below it the Match is a suggestion, never an
// automatic acceptance. Malformed input never errors: an empty or
// whitespace-only name just yields no match.
func (r *Resolver) Resolve(raw string) (Match, bool) {
	folded := Fold(raw)
	if folded == "" || len(r.entries) == 0 {
		return Match{}, false
	}
	best := Match{Score: -1}
	for _, e := range r.entries {
		score := Similarity(folded, e.folded)
		if score > best.Score {
			best = Match{PlayerID: e.id, Name: e.name, Score: score}
			if score == 100 {
				break
			}
		}
	}
	if best.Score < 0 {
		return Match{}, false
	}
	return best, best.Score >= r.threshold
}

// ExactID looks up a name case-insensitively, bypassing fuzzy scoring. Used
// for manual corrections, which are authoritative.
func (r *Resolver) ExactID(name string) (string, bool) {
	folded := Fold(name)
	if folded == "" {
		return "", false
	}
	for _, e := range r.entries {
		if e.folded == folded {
			return e.id, true
		}
	}
	return "", false
}

// Add registers a newly created player so later rows in the same batch
// resolve to the same id instead of creating duplicates.
func (r *Resolver) Add(name, id string) {
	folded := Fold(name)
	if folded == "" {
		return
	}
	e := entry{folded: folded, name: name, id: id}
	i := sort.Search(len(r.entries), func(i int) bool {
		if r.entries[i].folded != folded {
			return r.entries[i].folded > folded
		}
		return r.entries[i].id >= id
	})
	r.entries = append(r.entries, entry{})
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = e
}

// Fold normalizes a name for comparison: transliterate to ASCII, lowercase,
// collapse whitespace.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(unidecode.Unidecode(s))), " ")
}

// Similarity scores two folded names 0-100 with a weighted ratio that ignores
// token order: the best of the plain edit-distance ratio, the token-sorted
// ratio, and Jaro-Winkler.
func Similarity(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	score := editRatio(a, b)
	if s := editRatio(tokenSort(a), tokenSort(b)); s > score {
		score = s
	}
	if s := int(smetrics.JaroWinkler(a, b, 0.7, 4) * 100); s > score {
		score = s
	}
	if score > 100 {
		score = 100
	}
	return score
}

// editRatio is the SequenceMatcher-style ratio: substitutions cost 2, so the
// distance is pure insert/delete and the ratio is shared-content over total
// length.
func editRatio(a, b string) int {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 0
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return int(float64(total-dist) / float64(total) * 100)
}

func tokenSort(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
