package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/prefs"
	"github.com/robalobadob/guessgame/internal/terminal"
)

var scoreCmd = &cobra.Command{
	Use:   "score <guess> <solution>",
	Short: "Print the feedback for a guess against a solution",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		guess, solution := strings.ToLower(args[0]), strings.ToLower(args[1])
		for _, w := range []string{guess, solution} {
			if game.Sanitize(w, len(w)) != w {
				return fmt.Errorf("%w: %q: letters a-z only", game.ErrInvalidInput, w)
			}
		}
		if len(guess) != len(solution) {
			return fmt.Errorf("guess has %d letters, solution has %d", len(guess), len(solution))
		}
		if guess == "" {
			return fmt.Errorf("empty guess")
		}
		labels := game.Score(guess, solution)

		names := make([]string, len(labels))
		for i, l := range labels {
			names[i] = string(l)
		}
		row := terminal.NewRenderer(prefs.ThemeDark).Row(game.Row{Word: guess, Labels: labels, Filled: true}, "", len(guess))
		_, err := lipgloss.Fprintln(cmd.OutOrStdout(), row+"  "+strings.Join(names, " "))
		return err
	},
}
