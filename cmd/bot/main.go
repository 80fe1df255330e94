package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/analyzer"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/collector"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/config"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/ledger"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/notifier"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/recorder"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] trading-bot starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher and analysis pipeline
	fetcher := collector.NewTwelveDataFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	an := analyzer.New(fetcher, cfg.DataSource.Interval, cfg.DataSource.OutputSize, cfg.Strategy.BuyThreshold)

	// Init authorization ledger; the admin account is always provisioned.
	ld := ledger.New(ledger.NewFileStore(cfg.Ledger.UsersFile))
	if _, err := ld.Provision(cfg.Telegram.AdminID, "Admin", 365); err != nil {
		log.Fatalf("[FATAL] provision admin: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, an, ld, tn, rec, cfg)
	if err := sched.RegisterAll(cfg.Schedule.DigestCron, cfg.Schedule.ExpiryCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing digest now")
		go sched.RunDigestNow()
	}

	log.Println("[INFO] trading-bot is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] trading-bot stopped")
}
