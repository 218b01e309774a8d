package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/hindicards/internal/bot"
	"github.com/example/hindicards/internal/charts"
	"github.com/example/hindicards/internal/config"
	"github.com/example/hindicards/internal/database"
	"github.com/example/hindicards/internal/excel"
	"github.com/example/hindicards/internal/scheduler"
	"github.com/example/hindicards/internal/session"
	"github.com/example/hindicards/internal/vocabulary"
	"github.com/example/hindicards/pkg/models"
)

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load time zone: %v", err)
	}

	store, err := database.Connect(database.Config{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.URL,
		DataDir: cfg.Database.DataDir,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	sess := session.New(database.NewRepositories(store), session.Options{
		Seed:     loadSeed(cfg.Seed),
		Location: loc,
	})
	sess.Load(ctx)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)

	botConfig := bot.DefaultConfig()
	botConfig.OwnerID = cfg.Telegram.OwnerID
	botConfig.PollTimeout = cfg.Telegram.PollTimeout
	b := bot.New(api, sess, charts.NewEChartsSink(), botConfig)

	if cfg.Scheduler.Enabled {
		if cfg.Telegram.OwnerID == 0 {
			log.Println("Daily summary disabled: no owner configured")
		} else {
			s := scheduler.New(sess, b, cfg.Scheduler.SummaryHour, loc)
			if err := s.Start(); err != nil {
				log.Fatalf("Failed to start scheduler: %v", err)
			}
			defer s.Stop()
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Println("Bot started. Press Ctrl+C to stop.")
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Bot error: %v", err)
		}
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		cancel()
		<-done
	case <-done:
	}
	log.Println("Bot stopped successfully")
}

// loadSeed returns the starting deck: the configured spreadsheet, or the built-in vocabulary
func loadSeed(cfg config.SeedConfig) []models.Flashcard {
	if cfg.File == "" {
		return vocabulary.Preloaded()
	}

	seedConfig := excel.DefaultSeedConfig()
	seedConfig.FilePath = cfg.File
	seedConfig.SheetName = cfg.Sheet

	result, err := excel.LoadSeed(seedConfig)
	if err != nil {
		log.Printf("Failed to read seed file %s, using built-in vocabulary: %v", cfg.File, err)
		return vocabulary.Preloaded()
	}
	for _, msg := range result.Errors {
		log.Printf("Seed: %s", msg)
	}
	log.Printf("Seed file %s: %d cards, %d rows skipped", cfg.File, len(result.Cards), result.Skipped)
	return result.Cards
}
