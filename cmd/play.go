package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/prefs"
	"github.com/robalobadob/guessgame/internal/terminal"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play rounds in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		settings, err := gameSettings(cfg)
		if err != nil {
			return err
		}

		pr, err := prefs.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open preferences: %w", err)
		}
		defer pr.Close()

		theme, err := prefs.LoadTheme(ctx, pr, terminal.PrefsOwner)
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}

		p := terminal.NewPlayer(game.NewRound(settings), theme, cmd.InOrStdin(), cmd.OutOrStdout())
		return p.Run(ctx)
	},
}
