package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/Ayash-Bera/goai/backend/internal/config"
	"github.com/Ayash-Bera/goai/backend/internal/database"
	"github.com/Ayash-Bera/goai/backend/internal/learning"
	"github.com/Ayash-Bera/goai/backend/internal/seeder"
	"github.com/Ayash-Bera/goai/backend/internal/storage"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	examplesFile = flag.String("examples", "", "YAML file with rated examples to record")
	urls         = flag.String("url", "", "Comma separated list of pages to crawl and record")
	dryRun       = flag.Bool("dry-run", false, "Don't record anything, just print what would be recorded")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	limit        = flag.Int("limit", 0, "Limit number of examples or pages to process (0 = all)")
	concurrent   = flag.Int("concurrent", 2, "Number of concurrent requests")
	delay        = flag.Duration("delay", 2*time.Second, "Delay between requests")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *examplesFile == "" && *urls == "" {
		logger.Fatal("Nothing to seed: pass -examples and/or -url")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	dbConfig := &database.Config{LogLevel: cfg.Log.Level}
	switch cfg.Storage.Backend {
	case "postgres":
		dbConfig.DatabaseURL = cfg.Database.URL
	case "redis":
		if err := cfg.ValidateRedis(); err != nil {
			logger.WithError(err).Fatal("Redis configuration validation failed")
		}
		dbConfig.RedisURL = cfg.Redis.URL
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	if dbManager.DB != nil {
		if err := dbManager.Migrate(); err != nil {
			logger.WithError(err).Fatal("Failed to migrate database")
		}
	}

	store, err := storage.New(cfg.Storage.Backend, cfg.Storage.Dir, dbManager.DB, dbManager.Redis)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize storage")
	}

	ctx := context.Background()

	system := learning.NewSystem(store, logger)
	if err := system.Load(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to load learning data")
	}

	contentSeeder := seeder.NewContentSeeder(system, seeder.Options{
		DryRun:     *dryRun,
		Limit:      *limit,
		Concurrent: *concurrent,
		Delay:      *delay,
	}, logger)

	failed := 0

	if *examplesFile != "" {
		examples, err := seeder.LoadExamplesFile(*examplesFile)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load examples")
		}
		logger.WithField("examples", len(examples)).Info("Seeding examples from file")
		report := contentSeeder.SeedExamples(ctx, examples)
		failed += len(report.Errors)
	}

	if *urls != "" {
		pages := splitList(*urls)
		logger.WithField("pages", len(pages)).Info("Crawling pages")
		report := contentSeeder.CrawlPages(ctx, pages)
		failed += len(report.Errors)
	}

	if !*dryRun {
		if err := system.Save(ctx); err != nil {
			logger.WithError(err).Error("Failed to save learning data")
			failed++
		}
	}

	logger.WithFields(logrus.Fields{
		"examples": len(system.Examples()),
		"patterns": len(system.Patterns()),
		"errors":   failed,
	}).Info("Seeding finished")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
