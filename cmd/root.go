package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessgame/internal/config"
	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/words"
)

// cfg is loaded once by the root command before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "guessgame",
	Short:         "Five-letter word guessing game",
	Long:          "guessgame serves a browser word-guessing game and can play rounds in the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}
		c, err := config.Load()
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			c.LogLevel = lvl
		}
		setupLogging(c)
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default ./.env when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging configures the global zerolog logger. Unknown levels keep info.
func setupLogging(c config.Config) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	if c.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// gameSettings loads the word list and builds round settings from cfg.
// WORDS_FIXED_SOLUTION pins every round to one word; WORDS_DAILY_SALT
// gives every round the word of the UTC day.
func gameSettings(c config.Config) (game.Settings, error) {
	list, err := words.Load(c.WordsFile, c.WordLength)
	if err != nil {
		return game.Settings{}, err
	}
	s := game.Settings{Words: list, MaxAttempts: c.MaxAttempts}
	if c.FixedSolution != "" {
		i := list.Index(c.FixedSolution)
		if i < 0 {
			return game.Settings{}, fmt.Errorf("WORDS_FIXED_SOLUTION %q is not in the word list", c.FixedSolution)
		}
		s.Picker = words.FixedPicker(i)
		log.Warn().Str("solution", list.At(i)).Msg("fixed solution enabled")
	} else if c.DailySalt != "" {
		s.Picker = words.DatePicker{Salt: c.DailySalt}
		log.Info().Str("day", words.DateKey(time.Now())).Msg("daily word enabled")
	}
	log.Info().Int("words", list.Len()).Int("wordLength", list.WordLength()).Msg("word list loaded")
	return s, nil
}
