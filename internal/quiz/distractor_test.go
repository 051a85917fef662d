package quiz

import (
	"math/rand/v2"
	"testing"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func checkOptions(t *testing.T, correct int, opts []int) {
	t.Helper()
	if len(opts) != OptionCount {
		t.Fatalf("correct=%d: expected %d options, got %d (%v)", correct, OptionCount, len(opts), opts)
	}
	seen := make(map[int]bool)
	found := false
	for _, o := range opts {
		if o < 0 {
			t.Errorf("correct=%d: negative option %d", correct, o)
		}
		if seen[o] {
			t.Errorf("correct=%d: duplicate option %d in %v", correct, o, opts)
		}
		seen[o] = true
		if o == correct {
			found = true
		}
	}
	if !found {
		t.Errorf("correct=%d: answer missing from %v", correct, opts)
	}
}

func TestGenerateOptions_Properties(t *testing.T) {
	r := testRand(7)
	for correct := 0; correct <= 300; correct++ {
		for i := 0; i < 5; i++ {
			checkOptions(t, correct, GenerateOptions(r, correct))
		}
	}
}

func TestGenerateOptions_ClusteredNearAnswer(t *testing.T) {
	r := testRand(11)
	for i := 0; i < 200; i++ {
		opts := GenerateOptions(r, 50)
		for _, o := range opts {
			if o < 40 || o > 60 {
				t.Fatalf("option %d outside ±10 of 50: %v", o, opts)
			}
		}
	}
}

// zeroRand always returns 0, so every perturbation is -10 and gets
// rejected for small answers.
type zeroRand struct{}

func (zeroRand) IntN(int) int                { return 0 }
func (zeroRand) Shuffle(int, func(i, j int)) {}

func TestGenerateOptions_FallbackPadding(t *testing.T) {
	opts := GenerateOptions(zeroRand{}, 0)
	checkOptions(t, 0, opts)

	want := []int{0, 11, 12, 13}
	for i := range want {
		if opts[i] != want[i] {
			t.Fatalf("expected fallback options %v, got %v", want, opts)
		}
	}
}

func TestGenerateOptions_FallbackAfterPartialCluster(t *testing.T) {
	// 0 -> delta -10 accepted once for correct=10, then repeats are rejected.
	opts := GenerateOptions(zeroRand{}, 10)
	checkOptions(t, 10, opts)

	want := []int{10, 0, 22, 23}
	for i := range want {
		if opts[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, opts)
		}
	}
}

func TestGenerateOptions_Deterministic(t *testing.T) {
	a := GenerateOptions(testRand(3), 42)
	b := GenerateOptions(testRand(3), 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced %v and %v", a, b)
		}
	}
}
