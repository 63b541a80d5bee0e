package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pocket-sommelier/internal/catalog"
	"pocket-sommelier/internal/config"
	"pocket-sommelier/internal/favorites"
	"pocket-sommelier/internal/questionnaire"
	"pocket-sommelier/internal/recommend"
	"pocket-sommelier/internal/scheduler"
	"pocket-sommelier/internal/session"
	"pocket-sommelier/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := favorites.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open favorites store: %v", err)
	}
	defer store.Close()

	sessions := session.NewManager()
	client := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)

	machine := questionnaire.NewMachine(sessions)
	resolver := recommend.NewResolver(client, sessions)
	favSvc := favorites.NewService(store, sessions)

	sweep := scheduler.New(sessions, cfg.SessionTTL)
	if err := sweep.Start(); err != nil {
		log.Fatalf("failed to start session sweep: %v", err)
	}
	defer sweep.Stop()

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		machine,
		resolver,
		favSvc,
		cfg.AllowedUsers,
		cfg.MessageParseMode,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot.Start(ctx)
}
