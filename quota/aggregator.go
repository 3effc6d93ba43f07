package quota

import (
	"golf-quota-tracker/models"
)

// Round is one scored outing, flattened out of a tournament's results. This is
// the unit the quota calculator consumes; it is derived, never persisted.
type Round struct {
	PlayerID       string  `json:"player_id"`
	Score          float64 `json:"score"`
	Date           string  `json:"date"` // ISO YYYY-MM-DD, "" when unknown
	TournamentID   string  `json:"tournament_id"`
	TournamentName string  `json:"tournament_name"`
}

// AggregateRounds flattens every tournament's results into per-player round
// lists, each round carrying the event's date and name. Pure function of the
// snapshot; tournaments with no results contribute nothing, and score lists of
// any length are accepted (no triplet assumption).
func AggregateRounds(tournaments map[string]models.TournamentRecord) map[string][]Round {
	out := make(map[string][]Round)
	for tid, t := range tournaments {
		for pid, scores := range t.Results {
			for _, score := range scores {
				out[pid] = append(out[pid], Round{
					PlayerID:       pid,
					Score:          score,
					Date:           t.Date,
					TournamentID:   tid,
					TournamentName: t.Name,
				})
			}
		}
	}
	return out
}
