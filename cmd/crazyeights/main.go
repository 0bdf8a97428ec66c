package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadedpez/crazyeights/internal/bot"
	"github.com/fadedpez/crazyeights/internal/config"
	"github.com/fadedpez/crazyeights/internal/discord"
	"github.com/fadedpez/crazyeights/internal/games"
	"github.com/fadedpez/crazyeights/internal/logging"
	"github.com/fadedpez/crazyeights/pkg/games/crazyeights"
	"github.com/fadedpez/crazyeights/pkg/repositories/game"
	"github.com/fadedpez/crazyeights/pkg/scheduler"
	"github.com/fadedpez/crazyeights/pkg/services/statistics"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.SetDefault(logging.NewLogger(logging.ParseLevel(cfg.LogLevel)))
	logger := logging.Default.WithField("component", "main")

	// Match history
	repo, esRepo, err := newRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}
	stats := statistics.NewService(repo)

	// Register games
	registry := games.NewRegistry()
	factory := crazyeights.NewFactory(stats, crazyeights.ManagerOptions{
		Delay: cfg.OpponentDelay,
		Seed:  cfg.RandomSeed,
	})
	if err := registry.RegisterGame(crazyeights.CommandName, factory); err != nil {
		log.Fatalf("Failed to register game: %v", err)
	}

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	// Create and initialize bot
	eightsBot, err := bot.New(cfg, session, registry)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Start the bot
	if err := eightsBot.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	maintenanceConfig := scheduler.MaintenanceConfig{
		IdleTimeout:     cfg.IdleTimeout,
		SweepInterval:   cfg.SweepInterval,
		ResultRetention: cfg.ResultRetention,
	}
	if esRepo != nil {
		maintenanceConfig.Rotator = esRepo
	}
	maintenance := scheduler.NewMaintenanceScheduler(factory.Manager(), repo, maintenanceConfig)

	ctx, cancel := context.WithCancel(context.Background())
	maintenance.Start(ctx)

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	// Cleanup and exit
	fmt.Println("Shutting down...")
	cancel()
	maintenance.Stop()
	eightsBot.Shutdown()
	factory.Manager().Shutdown()
	if err := repo.Close(); err != nil {
		logger.Error("Failed to close repository: %v", err)
	}
}

// newRepository opens the configured match history store, wrapped with
// Elasticsearch indexing when it is enabled
func newRepository(cfg *config.Config) (game.Repository, *game.ElasticsearchRepository, error) {
	var base game.Repository
	switch cfg.StorageType {
	case config.StorageSQLite:
		sqliteRepo, err := game.NewSQLiteRepository(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		base = sqliteRepo
	default:
		base = game.NewMemoryRepository()
	}

	if !cfg.ElasticsearchEnabled() {
		return base, nil, nil
	}

	esConfig := game.DefaultElasticsearchConfig()
	esConfig.URL = cfg.ElasticsearchURL
	esConfig.Username = cfg.ElasticsearchUsername
	esConfig.Password = cfg.ElasticsearchPassword
	esConfig.IndexPrefix = cfg.ElasticsearchIndexPrefix

	esRepo, err := game.NewElasticsearchRepository(base, esConfig)
	if err != nil {
		base.Close()
		return nil, nil, err
	}
	return esRepo, esRepo, nil
}
