package leaderboard

import "sort"

// Rank returns a new slice ordered by score descending, then by time spent
// ascending. Records tied on both keep their input order. records is not
// modified.
func Rank(records []PlayerRecord) []PlayerRecord {
	out := make([]PlayerRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].TimeSpentSeconds < out[j].TimeSpentSeconds
	})
	return out
}

// Position returns the 1-based ranked position of the record with id, or 0
// if it is not present.
func Position(ranked []PlayerRecord, id string) int {
	for i, r := range ranked {
		if r.ID == id {
			return i + 1
		}
	}
	return 0
}
