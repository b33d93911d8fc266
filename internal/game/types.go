// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - Label: per-letter result of a guess (correct/present/absent).
//   - Guess: a scored guess as recorded in a round's history.
//   - Status: lifecycle state of a round.
//   - View: read-only projection handed to presentation layers.

package game

// Label represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the solution at the same position.
//   - "present": letter occurs at another, not yet accounted for, position.
//   - "absent":  letter does not occur in any unaccounted-for position.
//
// LabelBlank only appears in placeholder rows of a View.
type Label string

const (
	LabelCorrect Label = "correct"
	LabelPresent Label = "present"
	LabelAbsent  Label = "absent"
	LabelBlank   Label = ""
)

// Status is the lifecycle state of a round. Won and Lost are terminal.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further input is accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Guess is an entered word paired with its feedback labels.
type Guess struct {
	Word   string  `json:"word"`
	Labels []Label `json:"labels"`
}

func (g Guess) clone() Guess {
	return Guess{Word: g.Word, Labels: append([]Label(nil), g.Labels...)}
}

// Row is one line of the board. Placeholder rows have an empty word and blank labels.
type Row struct {
	Word   string  `json:"word"`
	Labels []Label `json:"labels"`
	Filled bool    `json:"filled"`
}

// View is a snapshot of a round. Solution is only set once the round is over.
type View struct {
	Rows        []Row  `json:"rows"`
	Input       string `json:"input"`
	Status      Status `json:"status"`
	Message     string `json:"message,omitempty"`
	Solution    string `json:"solution,omitempty"`
	WordLength  int    `json:"wordLength"`
	MaxAttempts int    `json:"maxAttempts"`
	Attempts    int    `json:"attempts"`
}
