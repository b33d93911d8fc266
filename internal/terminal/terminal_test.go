package terminal

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/prefs"
	"github.com/robalobadob/guessgame/internal/words"
)

func newRound(t *testing.T) *game.Round {
	t.Helper()
	list, err := words.New([]string{"react", "table", "space", "devas", "build"}, 5)
	require.NoError(t, err)
	return game.NewRound(game.Settings{Words: list, Picker: words.FixedPicker(0)})
}

func newTheme(t *testing.T) (*prefs.SQLiteStore, *prefs.ThemePreference) {
	t.Helper()
	st, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	th, err := prefs.LoadTheme(context.Background(), st, PrefsOwner)
	require.NoError(t, err)
	return st, th
}

func play(t *testing.T, r *game.Round, th *prefs.ThemePreference, input string) string {
	t.Helper()
	var out bytes.Buffer
	p := NewPlayer(r, th, strings.NewReader(input), &out)
	require.NoError(t, p.Run(context.Background()))
	return ansi.Strip(out.String())
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, lightPalette, PaletteFor(prefs.ThemeLight))
	assert.Equal(t, darkPalette, PaletteFor(prefs.ThemeDark))
	assert.Equal(t, lightPalette, PaletteFor(prefs.Theme("sepia")))
}

func TestRenderer_Board(t *testing.T) {
	r := newRound(t)
	require.NoError(t, r.UpdateInput("table"))
	_, err := r.Submit()
	require.NoError(t, err)
	require.NoError(t, r.UpdateInput("re"))

	out := ansi.Strip(NewRenderer(prefs.ThemeLight).Board(r.View()))
	lines := strings.Split(out, "\n")
	// Border top and bottom plus one line per attempt.
	require.Len(t, lines, game.DefaultMaxAttempts+2)
	assert.Contains(t, lines[1], " T  A  B  L  E ")
	assert.Contains(t, lines[2], " R  E  ·  ·  · ")
	assert.Contains(t, lines[3], " ·  ·  ·  ·  · ")
}

func TestRenderer_Status(t *testing.T) {
	r := newRound(t)
	rd := NewRenderer(prefs.ThemeDark)
	assert.Contains(t, ansi.Strip(rd.Status(r.View())), "0/6 guesses used")

	require.NoError(t, r.UpdateInput("react"))
	_, err := r.Submit()
	require.NoError(t, err)
	out := ansi.Strip(rd.Status(r.View()))
	assert.Contains(t, out, "You won!")
	assert.Contains(t, out, ":new to play again")
}

func TestPlayer_WinAndQuit(t *testing.T) {
	_, th := newTheme(t)
	r := newRound(t)
	out := play(t, r, th, "table\nREACT\nbuild\n:quit\nspace\n")

	assert.Contains(t, out, "You won!")
	assert.Contains(t, out, "Round over")
	assert.Equal(t, game.StatusWon, r.Status())
	assert.Len(t, r.History(), 2)
}

func TestPlayer_Rejections(t *testing.T) {
	_, th := newTheme(t)
	r := newRound(t)
	out := play(t, r, th, "zzzzz\nab\nab1\n:bogus\n")

	assert.Contains(t, out, "Invalid word!")
	assert.Contains(t, out, "Need 5 letters")
	assert.Contains(t, out, "Use 5 letters a-z")
	assert.Contains(t, out, "Unknown command :bogus")
	assert.Empty(t, r.History())
}

func TestPlayer_NewRound(t *testing.T) {
	_, th := newTheme(t)
	r := newRound(t)
	play(t, r, th, "build\n:new\n")
	assert.Empty(t, r.History())
	assert.Equal(t, game.StatusInProgress, r.Status())
}

func TestPlayer_ThemePersists(t *testing.T) {
	st, th := newTheme(t)
	play(t, newRound(t), th, ":theme\n")
	assert.True(t, th.Dark())

	v, ok, err := st.Get(context.Background(), PrefsOwner, prefs.ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestPlayer_CanceledContext(t *testing.T) {
	_, th := newTheme(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPlayer(newRound(t), th, strings.NewReader("table\n"), &bytes.Buffer{})
	require.ErrorIs(t, p.Run(ctx), context.Canceled)
}
