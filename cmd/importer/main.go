package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"MarketImporter/internal/config"
	"MarketImporter/internal/ingest"
	"MarketImporter/internal/logging"
	"MarketImporter/internal/notify"
	"MarketImporter/internal/pipeline"
	"MarketImporter/internal/scheduler"
	"MarketImporter/internal/source"
	"MarketImporter/internal/store"
	"MarketImporter/internal/validate"
)

func main() {
	once := flag.Bool("once", false, "run a single import and exit")
	flag.Parse()

	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fallback := logging.New(logging.Config{Level: "info"})
		fallback.Fatal().Err(err).Msg("load config")
	}

	log := logging.New(logging.Config{
		Level:     cfg.Log.Level,
		Dir:       cfg.Log.Dir,
		MaxSizeMB: cfg.Log.MaxSizeMB,
		MaxAge:    cfg.Log.MaxAge,
	})
	log.Info().Msg("market data importer starting")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	cutoff, err := cfg.CutoffDate()
	if err != nil {
		log.Fatal().Err(err).Msg("config cutoff date")
	}

	st, err := store.Open(cfg.Database.SQLitePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()

	fetcher := source.NewStooqFetcher(cfg.Source.BaseURL, cfg.Source.MarketSuffix, cfg.Proxy, cfg.Source.Timeout.Duration())
	log.Info().Str("source", fetcher.Name()).Msg("data source initialized")

	var notifier notify.Notifier = notify.NewNoopNotifier()
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier = notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		log.Info().Msg("telegram notifications enabled")
	}

	runner := &pipeline.Runner{
		Fetcher:        fetcher,
		Ingestor:       ingest.NewEngine(st, cutoff),
		Validator:      validate.NewValidator(st, log),
		Trigger:        st,
		Store:          st,
		Notifier:       notifier,
		PacingDelay:    cfg.Run.PacingDelay.Duration(),
		TriggerTimeout: cfg.Run.TriggerTimeout.Duration(),
		Log:            log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, runner, log)

	if *once || os.Getenv("RUN_ON_START") == "true" {
		sched.RunNow()
		if *once {
			return
		}
	}

	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	log.Info().Str("cron", cfg.Schedule.DailyCron).Msg("importer is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
}
