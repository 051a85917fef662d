package quiz

const (
	// OptionCount is the number of choices every question offers.
	OptionCount = 4

	maxPerturbation    = 10
	distractorAttempts = 50
	fallbackOffset     = 10
)

// GenerateOptions returns OptionCount distinct non-negative integers that
// include correct, in random order. Distractors sit within ±10 of the
// correct value. When sampling cannot find enough of them (only possible
// for very small answers), values above the cluster are used instead.
func GenerateOptions(r Rand, correct int) []int {
	seen := map[int]bool{correct: true}
	opts := make([]int, 0, OptionCount)
	opts = append(opts, correct)

	for attempt := 0; attempt < distractorAttempts && len(opts) < OptionCount; attempt++ {
		// [-10, 10] without 0
		delta := r.IntN(2*maxPerturbation) - maxPerturbation
		if delta >= 0 {
			delta++
		}
		v := correct + delta
		if v < 0 || seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, v)
	}

	for len(opts) < OptionCount {
		v := correct + len(opts) + fallbackOffset
		for seen[v] {
			v++
		}
		seen[v] = true
		opts = append(opts, v)
	}

	r.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}
