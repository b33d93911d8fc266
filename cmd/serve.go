package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessgame/internal/httpserver"
	"github.com/robalobadob/guessgame/internal/prefs"
	"github.com/robalobadob/guessgame/internal/session"
	"github.com/robalobadob/guessgame/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser game over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if p, _ := cmd.Flags().GetString("port"); p != "" {
			cfg.Port = p
		}

		settings, err := gameSettings(cfg)
		if err != nil {
			return err
		}

		pr, err := prefs.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open preferences: %w", err)
		}
		defer pr.Close()

		if cfg.SessionSecret == "dev_secret_change_me" {
			log.Warn().Msg("SESSION_SECRET is the development default")
		}
		sm, err := session.NewManager(session.Options{
			Secret:     cfg.SessionSecret,
			CookieName: cfg.CookieName,
			TTL:        cfg.SessionTTL,
			Secure:     cfg.Production,
		})
		if err != nil {
			return err
		}

		srv := httpserver.New(httpserver.Options{
			Store:          store.NewMemoryStore(),
			Prefs:          pr,
			Sessions:       sm,
			Settings:       settings,
			ClientOrigin:   cfg.ClientOrigin,
			RequestTimeout: cfg.RequestTimeout,
			IdleTTL:        cfg.IdleTTL,
		})

		log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Dur("idle_ttl", cfg.IdleTTL).Msg("starting guessgame")
		if err := srv.Start(cmd.Context(), ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (overrides PORT)")
}
