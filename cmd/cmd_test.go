package cmd

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessgame/internal/config"
	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/words"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return ansi.Strip(out.String()), err
}

func TestScoreCommand(t *testing.T) {
	out, err := run(t, "score", "ROBOT", "rebor")
	require.NoError(t, err)
	assert.Contains(t, out, "correct absent correct correct absent")

	_, err = run(t, "score", "robot", "rebo")
	require.Error(t, err)

	_, err = run(t, "score", "robot")
	require.Error(t, err)
}

func TestScoreCommand_RejectsNonLetters(t *testing.T) {
	for _, args := range [][]string{
		{"rôbot", "rebor"},
		{"robot", "réboo"},
		{"rob0t", "rebor"},
		{"ro bt", "rebor"},
	} {
		out, err := run(t, append([]string{"score"}, args...)...)
		require.ErrorIs(t, err, game.ErrInvalidInput, "%v", args)
		assert.Empty(t, out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "guessgame (devel)")
}

func TestGameSettings(t *testing.T) {
	c := config.Config{WordLength: 5, MaxAttempts: 4}
	s, err := gameSettings(c)
	require.NoError(t, err)
	assert.Equal(t, 4, s.MaxAttempts)
	assert.Nil(t, s.Picker)
	assert.Positive(t, s.Words.Len())

	c.FixedSolution = "React"
	s, err = gameSettings(c)
	require.NoError(t, err)
	require.NotNil(t, s.Picker)
	assert.Equal(t, "react", s.Words.Draw(s.Picker))

	c.FixedSolution = "zzzzz"
	_, err = gameSettings(c)
	require.Error(t, err)

	c.FixedSolution = ""
	c.DailySalt = "salt"
	s, err = gameSettings(c)
	require.NoError(t, err)
	assert.IsType(t, words.DatePicker{}, s.Picker)
}
