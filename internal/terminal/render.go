package terminal

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/prefs"
)

// Palette holds the colors for one theme.
type Palette struct {
	Correct color.Color
	Present color.Color
	Absent  color.Color
	Empty   color.Color
	Border  color.Color
	Text    color.Color
	TextDim color.Color
	OnTile  color.Color
}

var (
	lightPalette = Palette{
		Correct: lipgloss.Color("#22C55E"), // green-500
		Present: lipgloss.Color("#EAB308"), // yellow-500
		Absent:  lipgloss.Color("#9CA3AF"), // gray-400
		Empty:   lipgloss.Color("#E5E7EB"), // gray-200
		Border:  lipgloss.Color("#D1D5DB"),
		Text:    lipgloss.Color("#1F2937"),
		TextDim: lipgloss.Color("#6B7280"),
		OnTile:  lipgloss.Color("#FFFFFF"),
	}
	darkPalette = Palette{
		Correct: lipgloss.Color("#16A34A"), // green-600
		Present: lipgloss.Color("#CA8A04"), // yellow-600
		Absent:  lipgloss.Color("#4B5563"), // gray-600
		Empty:   lipgloss.Color("#1F2937"), // gray-800
		Border:  lipgloss.Color("#374151"),
		Text:    lipgloss.Color("#F9FAFB"),
		TextDim: lipgloss.Color("#9CA3AF"),
		OnTile:  lipgloss.Color("#FFFFFF"),
	}
)

// PaletteFor returns the palette for t.
func PaletteFor(t prefs.Theme) Palette {
	if t == prefs.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Renderer draws round views with lipgloss.
type Renderer struct {
	p Palette
}

func NewRenderer(t prefs.Theme) *Renderer {
	return &Renderer{p: PaletteFor(t)}
}

// SetTheme switches the palette.
func (r *Renderer) SetTheme(t prefs.Theme) { r.p = PaletteFor(t) }

func (r *Renderer) tileStyle(label game.Label) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(r.p.OnTile)
	switch label {
	case game.LabelCorrect:
		return s.Background(r.p.Correct)
	case game.LabelPresent:
		return s.Background(r.p.Present)
	case game.LabelAbsent:
		return s.Background(r.p.Absent)
	default:
		return s.Background(r.p.Empty).Foreground(r.p.Text)
	}
}

// Tile renders one letter; blank tiles show a dot.
func (r *Renderer) Tile(letter string, label game.Label) string {
	if letter == "" {
		letter = "·"
	}
	return r.tileStyle(label).Render(strings.ToUpper(letter))
}

// Row renders a board row. The pending input is shown on the first open row.
func (r *Renderer) Row(row game.Row, input string, n int) string {
	word := row.Word
	if !row.Filled {
		word = input
	}
	tiles := make([]string, n)
	for i := 0; i < n; i++ {
		var letter string
		if i < len(word) {
			letter = word[i : i+1]
		}
		label := game.LabelBlank
		if row.Filled && i < len(row.Labels) {
			label = row.Labels[i]
		}
		tiles[i] = r.Tile(letter, label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// Board renders every row inside a rounded border.
func (r *Renderer) Board(v game.View) string {
	rows := make([]string, len(v.Rows))
	open := -1
	if v.Status == game.StatusInProgress {
		open = v.Attempts
	}
	for i, row := range v.Rows {
		input := ""
		if i == open {
			input = v.Input
		}
		rows[i] = r.Row(row, input, v.WordLength)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.p.Border).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Status renders the message line and the prompt hint.
func (r *Renderer) Status(v game.View) string {
	var lines []string
	if v.Message != "" {
		style := lipgloss.NewStyle().Bold(true).Foreground(r.p.Text)
		switch v.Status {
		case game.StatusWon:
			style = style.Foreground(r.p.Correct)
		case game.StatusLost:
			style = style.Foreground(r.p.Present)
		}
		lines = append(lines, style.Render(v.Message))
	}
	hint := fmt.Sprintf("%d/%d guesses used · :new · :theme · :quit", v.Attempts, v.MaxAttempts)
	if v.Status.Terminal() {
		hint = ":new to play again · :quit"
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(r.p.TextDim).Italic(true).Render(hint))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Screen is the board followed by the status block.
func (r *Renderer) Screen(v game.View) string {
	return lipgloss.JoinVertical(lipgloss.Left, r.Board(v), r.Status(v))
}
