package game

import "fmt"

// Score compares guess against solution and returns one label per letter.
//
// Pass 1:
//   - Mark exact matches as correct and consume that solution position.
//
// Pass 2:
//   - For each remaining guess letter, left to right, claim the first
//     unconsumed solution position holding the same letter and mark it
//     present; otherwise it stays absent.
//
// Earlier guess positions win ties, so a letter is never credited more
// times than it occurs in the solution.
//
// Score panics if the lengths differ; callers validate input first.
func Score(guess, solution string) []Label {
	if len(guess) != len(solution) {
		panic(fmt.Sprintf("game: score length mismatch: guess %d, solution %d", len(guess), len(solution)))
	}
	n := len(guess)
	res := make([]Label, n)
	consumed := make([]bool, n)

	for i := 0; i < n; i++ {
		res[i] = LabelAbsent
		if guess[i] == solution[i] {
			res[i] = LabelCorrect
			consumed[i] = true
		}
	}

	for i := 0; i < n; i++ {
		if res[i] != LabelAbsent {
			continue
		}
		for j := 0; j < n; j++ {
			if !consumed[j] && solution[j] == guess[i] {
				res[i] = LabelPresent
				consumed[j] = true
				break
			}
		}
	}
	return res
}

// allCorrect returns true if every label is LabelCorrect.
func allCorrect(labels []Label) bool {
	for _, l := range labels {
		if l != LabelCorrect {
			return false
		}
	}
	return true
}
