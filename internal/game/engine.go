// internal/game/engine.go
//
// Round state machine for a single game.
// Responsibilities:
//   - Start and restart rounds with a solution drawn from the word list.
//   - Validate input updates (length, alphabet) and submissions (length, dictionary).
//   - Score guesses with Score and append them to the history.
//   - Track state transitions: in_progress → won/lost.
//   - Notify observers after every change.
//
// Notes:
//   - A Round is not safe for concurrent use; owners serialize access.
//   - The random source is injected through Settings.Picker.
package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/guessgame/internal/words"
)

const (
	DefaultMaxAttempts = 6

	msgInvalidWord = "Invalid word!"
	msgWon         = "You won!"
	msgLostFormat  = "Game Over! The word was %s"
)

// Settings configures how rounds are built.
type Settings struct {
	Words       *words.List
	Picker      words.Picker // nil means words.CryptoPicker
	MaxAttempts int          // <= 0 means DefaultMaxAttempts
}

func (s Settings) picker() words.Picker {
	if s.Picker == nil {
		return words.CryptoPicker{}
	}
	return s.Picker
}

func (s Settings) maxAttempts() int {
	if s.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return s.MaxAttempts
}

// Round holds the state of one game: solution, history, pending input and status.
type Round struct {
	words       *words.List
	picker      words.Picker
	maxAttempts int

	solution  string
	history   []Guess
	input     string
	status    Status
	message   string
	observers []func(View)
}

// NewRound constructs a round and starts it.
func NewRound(s Settings) *Round {
	r := &Round{
		words:       s.Words,
		picker:      s.picker(),
		maxAttempts: s.maxAttempts(),
	}
	r.Start()
	return r
}

// Observe registers fn to be called with a fresh View after each change.
func (r *Round) Observe(fn func(View)) {
	r.observers = append(r.observers, fn)
}

func (r *Round) notify() {
	if len(r.observers) == 0 {
		return
	}
	v := r.View()
	for _, fn := range r.observers {
		fn(v)
	}
}

// Start draws a new solution and resets history, input, message and status.
func (r *Round) Start() {
	r.solution = r.words.Draw(r.picker)
	r.history = make([]Guess, 0, r.maxAttempts)
	r.input = ""
	r.message = ""
	r.status = StatusInProgress
	r.notify()
}

// Restart is Start; it is valid in any status.
func (r *Round) Restart() { r.Start() }

// UpdateInput replaces the pending input with text, lowercased.
// Text longer than the word length or holding anything but a–z is rejected
// and the pending input is kept.
func (r *Round) UpdateInput(text string) error {
	if r.status.Terminal() {
		return ErrRoundOver
	}
	text = strings.ToLower(text)
	if len(text) > r.words.WordLength() {
		return fmt.Errorf("%w: more than %d letters", ErrInvalidInput, r.words.WordLength())
	}
	if !isAlpha(text) {
		return fmt.Errorf("%w: letters a-z only", ErrInvalidInput)
	}
	if text == r.input {
		return nil
	}
	r.input = text
	r.notify()
	return nil
}

// Submit scores the pending input and records it.
//
// Validation rules:
//   - Round must be in progress.
//   - Input must be exactly the word length.
//   - Input must be in the word list; otherwise the message is set and
//     nothing else changes.
//
// State transitions:
//   - Every label correct → won.
//   - Else history reaches max attempts → lost.
func (r *Round) Submit() (Guess, error) {
	if r.status.Terminal() {
		return Guess{}, ErrRoundOver
	}
	if len(r.input) != r.words.WordLength() {
		return Guess{}, fmt.Errorf("%w: need %d letters", ErrIncompleteGuess, r.words.WordLength())
	}
	if !r.words.Contains(r.input) {
		r.message = msgInvalidWord
		r.notify()
		return Guess{}, fmt.Errorf("%w: %q", ErrNotInDictionary, r.input)
	}

	g := Guess{Word: r.input, Labels: Score(r.input, r.solution)}
	r.history = append(r.history, g)
	r.input = ""

	switch {
	case allCorrect(g.Labels):
		r.status = StatusWon
		r.message = msgWon
	case len(r.history) >= r.maxAttempts:
		r.status = StatusLost
		r.message = fmt.Sprintf(msgLostFormat, r.solution)
	default:
		r.message = ""
	}
	r.notify()
	return g.clone(), nil
}

// Status reports the current status.
func (r *Round) Status() Status { return r.status }

// Input reports the pending input.
func (r *Round) Input() string { return r.input }

// Message reports the last user-visible message.
func (r *Round) Message() string { return r.message }

// Solution reports the hidden word. Presentation layers should use View,
// which only reveals it once the round is over.
func (r *Round) Solution() string { return r.solution }

// History returns a copy of the recorded guesses.
func (r *Round) History() []Guess {
	out := make([]Guess, len(r.history))
	for i, g := range r.history {
		out[i] = g.clone()
	}
	return out
}

// View projects the round onto maxAttempts rows.
func (r *Round) View() View {
	n := r.words.WordLength()
	rows := make([]Row, r.maxAttempts)
	for i := range rows {
		if i < len(r.history) {
			g := r.history[i].clone()
			rows[i] = Row{Word: g.Word, Labels: g.Labels, Filled: true}
			continue
		}
		rows[i] = Row{Labels: make([]Label, n)}
	}
	v := View{
		Rows:        rows,
		Input:       r.input,
		Status:      r.status,
		Message:     r.message,
		WordLength:  n,
		MaxAttempts: r.maxAttempts,
		Attempts:    len(r.history),
	}
	if r.status.Terminal() {
		v.Solution = r.solution
	}
	return v
}

// Sanitize lowercases text, drops anything outside a–z and caps it at n letters.
// Presentation layers use it before calling UpdateInput.
func Sanitize(text string, n int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if b.Len() >= n {
			break
		}
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
