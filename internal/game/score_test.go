package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	c = LabelCorrect
	p = LabelPresent
	a = LabelAbsent
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		solution string
		want     []Label
	}{
		{"identical", "react", "react", []Label{c, c, c, c, c}},
		{"no overlap", "build", "space", []Label{a, a, a, a, a}},
		{"all misplaced", "table", "bleat", []Label{p, p, p, p, p}},
		{"exact match consumes before misplaced", "robot", "rebor", []Label{c, a, c, c, a}},
		{"left-most repeat wins tie", "speed", "abide", []Label{a, a, p, a, p}},
		{"exact match at end claims its slot", "eerie", "there", []Label{p, a, p, a, c}},
		{"three repeats, one left", "aaaaa", "abcda", []Label{c, a, a, a, c}},
		{"both repeats find a slot", "llama", "hello", []Label{p, p, a, a, a}},
		{"repeat in solution only", "space", "sassy", []Label{c, a, p, a, a}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.guess, tt.solution))
		})
	}
}

func TestScore_PanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() { Score("abc", "abcd") })
}

func TestScore_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	// A small alphabet forces plenty of repeated letters.
	const alphabet = "abcde"
	randWord := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(b)
	}

	for iter := 0; iter < 2000; iter++ {
		n := 1 + rng.Intn(7)
		g, s := randWord(n), randWord(n)
		got := Score(g, s)

		require.Len(t, got, n)
		for _, l := range got {
			require.Contains(t, []Label{c, p, a}, l)
		}
		require.Equal(t, got, Score(g, s), "deterministic for %q/%q", g, s)
		require.Equal(t, allCorrect(got), g == s, "all-correct iff equal for %q/%q", g, s)

		credited := map[byte]int{}
		inSolution := map[byte]int{}
		for i := 0; i < n; i++ {
			inSolution[s[i]]++
			if got[i] != a {
				credited[g[i]]++
			}
			if got[i] == c {
				require.Equal(t, s[i], g[i])
			}
		}
		for ch, k := range credited {
			require.LessOrEqual(t, k, inSolution[ch], "letter %q over-credited in %q/%q", ch, g, s)
		}
	}
}
