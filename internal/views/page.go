// internal/views/page.go
//
// Data and helpers for the templ components in page.templ.
// Components:
//   - Page:  full document (header, theme toggle, board, input form, message, New Game).
//   - Board: one row per attempt, placeholders for rows not yet guessed.
//   - Tile:  a single letter box coloured by its label.
//
// Regenerate page_templ.go with `templ generate` after editing page.templ.

package views

import (
	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/prefs"
)

// PageData is everything the page needs.
type PageData struct {
	Title string
	View  game.View
	Theme prefs.Theme
}

func (d PageData) title() string {
	if d.Title == "" {
		return "Guess Game"
	}
	return d.Title
}

// letterAt returns the i-th letter of word, or "" past its end.
func letterAt(word string, i int) string {
	if i >= len(word) {
		return ""
	}
	return word[i : i+1]
}

func labelAt(labels []game.Label, i int) game.Label {
	if i >= len(labels) {
		return game.LabelBlank
	}
	return labels[i]
}

func tileClass(label game.Label) string {
	if label == game.LabelBlank {
		return "tile"
	}
	return "tile " + string(label)
}
