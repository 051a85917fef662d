package leaderboard

// Merge appends the records of incoming whose IDs are not already present,
// keeping the first occurrence of each ID. It returns the merged list and
// how many records were added.
func Merge(existing, incoming []PlayerRecord) ([]PlayerRecord, int) {
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := make([]PlayerRecord, 0, len(existing)+len(incoming))
	for _, r := range existing {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}

	added := 0
	for _, r := range incoming {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
		added++
	}
	return out, added
}
