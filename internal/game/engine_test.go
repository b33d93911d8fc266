package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessgame/internal/words"
)

func newTestRound(t *testing.T, picker words.Picker) *Round {
	t.Helper()
	list, err := words.New([]string{"react", "table", "space", "devas", "build"}, 5)
	require.NoError(t, err)
	return NewRound(Settings{Words: list, Picker: picker, MaxAttempts: 6})
}

func enter(t *testing.T, r *Round, w string) (Guess, error) {
	t.Helper()
	require.NoError(t, r.UpdateInput(w))
	return r.Submit()
}

func TestNewRound_Starts(t *testing.T) {
	r := newTestRound(t, words.FixedPicker(1))
	assert.Equal(t, "table", r.Solution())
	assert.Equal(t, StatusInProgress, r.Status())
	assert.Empty(t, r.History())
	assert.Empty(t, r.Input())
	assert.Empty(t, r.Message())
}

func TestNewRound_Defaults(t *testing.T) {
	list, err := words.New([]string{"react"}, 5)
	require.NoError(t, err)
	r := NewRound(Settings{Words: list})
	assert.Equal(t, "react", r.Solution())
	assert.Equal(t, DefaultMaxAttempts, r.View().MaxAttempts)
}

func TestRound_UpdateInput(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{"empty", "", "", nil},
		{"partial", "rea", "rea", nil},
		{"full", "react", "react", nil},
		{"uppercase normalized", "ReAcT", "react", nil},
		{"too long", "reacts", "ab", ErrInvalidInput},
		{"digit", "re4ct", "ab", ErrInvalidInput},
		{"space", "re ct", "ab", ErrInvalidInput},
		{"non ascii", "réact", "ab", ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRound(t, words.FixedPicker(0))
			require.NoError(t, r.UpdateInput("ab"))
			err := r.UpdateInput(tt.text)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, r.Input())
		})
	}
}

func TestRound_SubmitIncomplete(t *testing.T) {
	r := newTestRound(t, words.FixedPicker(0))
	require.NoError(t, r.UpdateInput("rea"))
	_, err := r.Submit()
	require.ErrorIs(t, err, ErrIncompleteGuess)
	assert.Equal(t, "rea", r.Input())
	assert.Empty(t, r.History())
	assert.Empty(t, r.Message())
}

func TestRound_SubmitNotInDictionary(t *testing.T) {
	r := newTestRound(t, words.FixedPicker(0))
	_, err := enter(t, r, "zzzzz")
	require.ErrorIs(t, err, ErrNotInDictionary)
	assert.Equal(t, "Invalid word!", r.Message())
	assert.Equal(t, "zzzzz", r.Input())
	assert.Empty(t, r.History())
	assert.Equal(t, StatusInProgress, r.Status())
}

func TestRound_SubmitScoresAndClearsInput(t *testing.T) {
	r := newTestRound(t, words.FixedPicker(0)) // react
	_, err := enter(t, r, "zzzzz")
	require.Error(t, err)

	g, err := enter(t, r, "table")
	require.NoError(t, err)
	assert.Equal(t, "table", g.Word)
	assert.Equal(t, Score("table", "react"), g.Labels)
	assert.Empty(t, r.Input())
	assert.Empty(t, r.Message(), "stale message cleared by a valid guess")
	assert.Len(t, r.History(), 1)
	assert.Equal(t, StatusInProgress, r.Status())
}

func TestRound_WinImmediately(t *testing.T) {
	r := newTestRound(t, words.FixedPicker(2)) // space
	_, err := enter(t, r, "table")
	require.NoError(t, err)

	g, err := enter(t, r, "space")
	require.NoError(t, err)
	assert.True(t, allCorrect(g.Labels))
	assert.Equal(t, StatusWon, r.Status())
	assert.Equal(t, "You won!", r.Message())
	assert.Len(t, r.History(), 2)

	require.ErrorIs(t, r.UpdateInput("a"), ErrRoundOver)
	_, err = r.Submit()
	require.ErrorIs(t, err, ErrRoundOver)
}

func TestRound_LoseAfterMaxAttempts(t *testing.T) {
	r := newTestRound(t, words.FixedPicker(4)) // build
	for i := 0; i < 6; i++ {
		_, err := enter(t, r, "react")
		require.NoError(t, err)
	}
	assert.Equal(t, StatusLost, r.Status())
	assert.Equal(t, "Game Over! The word was build", r.Message())

	before := r.View()
	_, err := r.Submit()
	require.ErrorIs(t, err, ErrRoundOver)
	require.ErrorIs(t, r.UpdateInput("table"), ErrRoundOver)
	assert.Equal(t, before, r.View())
}

func TestRound_WinOnLastAttempt(t *testing.T) {
	r := newTestRound(t, words.FixedPicker(4))
	for i := 0; i < 5; i++ {
		_, err := enter(t, r, "react")
		require.NoError(t, err)
	}
	_, err := enter(t, r, "build")
	require.NoError(t, err)
	assert.Equal(t, StatusWon, r.Status())
}

func TestRound_RestartFromAnyStatus(t *testing.T) {
	for _, finish := range []string{"", "won", "lost"} {
		t.Run("from "+finish, func(t *testing.T) {
			r := newTestRound(t, words.NewSequencePicker(0, 3))
			switch finish {
			case "won":
				_, err := enter(t, r, "react")
				require.NoError(t, err)
			case "lost":
				for i := 0; i < 6; i++ {
					_, err := enter(t, r, "table")
					require.NoError(t, err)
				}
			default:
				require.NoError(t, r.UpdateInput("tab"))
			}

			r.Restart()
			assert.Equal(t, "devas", r.Solution())
			assert.Equal(t, StatusInProgress, r.Status())
			assert.Empty(t, r.History())
			assert.Empty(t, r.Input())
			assert.Empty(t, r.Message())
		})
	}
}

func TestRound_View(t *testing.T) {
	r := newTestRound(t, words.FixedPicker(0))
	_, err := enter(t, r, "table")
	require.NoError(t, err)
	require.NoError(t, r.UpdateInput("sp"))

	v := r.View()
	require.Len(t, v.Rows, 6)
	assert.True(t, v.Rows[0].Filled)
	assert.Equal(t, "table", v.Rows[0].Word)
	for _, row := range v.Rows[1:] {
		assert.False(t, row.Filled)
		assert.Empty(t, row.Word)
		assert.Equal(t, []Label{LabelBlank, LabelBlank, LabelBlank, LabelBlank, LabelBlank}, row.Labels)
	}
	assert.Equal(t, "sp", v.Input)
	assert.Equal(t, 1, v.Attempts)
	assert.Equal(t, 5, v.WordLength)
	assert.Empty(t, v.Solution, "solution hidden while in progress")

	v.Rows[0].Labels[0] = LabelBlank
	assert.NotEqual(t, LabelBlank, r.View().Rows[0].Labels[0], "view is a copy")

	_, err = enter(t, r, "react")
	require.NoError(t, err)
	assert.Equal(t, "react", r.View().Solution)
}

func TestRound_Observe(t *testing.T) {
	r := newTestRound(t, words.FixedPicker(0))
	var seen []View
	r.Observe(func(v View) { seen = append(seen, v) })

	require.NoError(t, r.UpdateInput("tab"))
	require.NoError(t, r.UpdateInput("tab")) // unchanged, no notification
	require.ErrorIs(t, r.UpdateInput("tab1"), ErrInvalidInput)
	require.NoError(t, r.UpdateInput("table"))
	_, err := r.Submit()
	require.NoError(t, err)
	r.Restart()

	require.Len(t, seen, 4)
	assert.Equal(t, "tab", seen[0].Input)
	assert.Equal(t, "table", seen[1].Input)
	assert.Equal(t, 1, seen[2].Attempts)
	assert.Equal(t, 0, seen[3].Attempts)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"ReAct", 5, "react"},
		{"re-act!", 5, "react"},
		{"reacts", 5, "react"},
		{"  b u i l d  ", 5, "build"},
		{"123", 5, ""},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in, tt.n), "Sanitize(%q, %d)", tt.in, tt.n)
	}
}
