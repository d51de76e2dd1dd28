package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tabletbot/internal/api"
	"github.com/tabletbot/internal/bot"
	"github.com/tabletbot/internal/config"
	"github.com/tabletbot/internal/store"
)

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Run the bot until interrupted",
		Action: runBot,
	}
}

func runBot(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initLogging(cfg.Log.Level)

	st, err := store.Load(cfg.State.Path)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	b, err := bot.New(cfg, st)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.API.Listen != "" {
		server := api.NewServer(b)
		go func() {
			if err := server.Start(cfg.API.Listen); err != nil {
				log.Error().Err(err).Msg("status API stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("status API shutdown failed")
			}
		}()
	}

	return b.Run(ctx)
}

func initLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
