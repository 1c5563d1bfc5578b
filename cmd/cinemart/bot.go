package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/cinemart/internal/config"
	"github.com/vadimtrunov/cinemart/internal/core"
	"github.com/vadimtrunov/cinemart/internal/frontend/telegram"
)

// newBotCmd returns the "bot" subcommand for running the Telegram bot.
func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Start the Telegram bot",
		Long:  "Start the Cinemart Telegram bot. Users pick a genre and a rating with inline buttons.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBot()
		},
	}
}

// runBot initializes services and runs the Telegram bot until interrupted.
func runBot() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if cfg.Telegram == nil {
		return errors.New(
			"telegram configuration is required: set telegram.bot_token in config or CINEMART_TELEGRAM_BOT_TOKEN env var",
		)
	}

	logger, closeLog := config.SetupLogger(cfg.App, os.Stderr)
	defer func() { _ = closeLog() }()

	bot, err := telegram.New(
		cfg.Telegram.BotToken,
		cfg.Telegram.AllowedUserIDs,
		initSuggester(cfg, logger),
		logger,
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return runFrontend(ctx, bot, logger)
}

// runFrontend blocks on a frontend until ctx is done.
func runFrontend(ctx context.Context, f core.Frontend, logger *slog.Logger) error {
	logger.Info("frontend starting", slog.String("frontend", f.Name()))
	err := f.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("frontend stopped", slog.String("frontend", f.Name()), slog.String("error", err.Error()))
		return err
	}
	return nil
}
