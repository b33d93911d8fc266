// internal/words/words.go
//
// Word list management for the game.
//
// Responsibilities:
//   - Load the word list from an env-provided file or fall back to the embedded default.
//   - Keep a set for quick dictionary lookups.
//   - Expose the list as the pool solutions are drawn from.
//
// The same list serves as solution pool and guess dictionary.
//
// Constraints:
//   • Words must be exactly the configured length and alphabetic (a–z).
//   • Lists are normalized to lowercase, deduplicated, and keep file order.
//   • A List is immutable once built.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/guessgame/assets"
)

// ErrEmpty is returned when no valid word survives normalization.
var ErrEmpty = errors.New("words: list is empty")

// List is a fixed set of same-length lowercase words.
type List struct {
	length int
	words  []string
	set    map[string]struct{}
}

// New builds a List from raw entries. Entries that are not length letters
// a–z after trimming and lowercasing are skipped.
func New(entries []string, length int) (*List, error) {
	if length < 1 {
		return nil, fmt.Errorf("words: invalid word length %d", length)
	}
	l := &List{length: length, set: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		w := strings.TrimSpace(strings.ToLower(e))
		if len(w) != length || !isAlpha(w) {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.words = append(l.words, w)
	}
	if len(l.words) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// Load reads the list from path, one word per line. An empty path loads the
// embedded default list.
func Load(path string, length int) (*List, error) {
	var (
		entries []string
		err     error
	)
	if path == "" {
		entries, err = assets.WordList()
	} else {
		entries, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: load %q: %w", path, err)
	}
	return New(entries, length)
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// WordLength returns the length shared by every word.
func (l *List) WordLength() int { return l.length }

// Len returns the number of words.
func (l *List) Len() int { return len(l.words) }

// At returns the i-th word in load order.
func (l *List) At(i int) string { return l.words[i] }

// Words returns a copy of the list.
func (l *List) Words() []string { return append([]string(nil), l.words...) }

// Contains reports whether w is in the list (case-insensitive).
func (l *List) Contains(w string) bool {
	_, ok := l.set[strings.ToLower(w)]
	return ok
}

// Index returns the position of w, or -1.
func (l *List) Index(w string) int {
	w = strings.ToLower(w)
	for i, x := range l.words {
		if x == w {
			return i
		}
	}
	return -1
}

// Draw picks a word using p.
func (l *List) Draw(p Picker) string {
	return l.words[p.Pick(len(l.words))]
}
