package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MorningBrief/internal/briefing"
	"MorningBrief/internal/collector"
	"MorningBrief/internal/config"
	"MorningBrief/internal/fundamentals"
	"MorningBrief/internal/news"
	"MorningBrief/internal/scheduler"
	"MorningBrief/internal/store"
	"MorningBrief/internal/sync"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MorningBrief starting...")

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

	// Init fetcher
	fetcher := collector.NewYahooFetcher(cfg.Proxy,
		cfg.Provider.RetryAttempts,
		time.Duration(cfg.Provider.RetryDelaySeconds)*time.Second)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init store: remote first, local fallback (hard failure in strict mode)
	st, err := store.Open(cfg.Database.PostgresDSN, cfg.Database.SQLitePath, cfg.Database.Strict)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	// Init synchronizer
	syncer := sync.NewSynchronizer(st, fetcher, cfg.History.Years)

	// Init fundamentals cache
	fm, err := fundamentals.NewManager(cfg.Fundamentals.CacheFile, fetcher,
		time.Duration(cfg.Fundamentals.TTLDays)*24*time.Hour,
		time.Duration(cfg.Fundamentals.FetchDelaySeconds)*time.Second)
	if err != nil {
		log.Fatalf("[FATAL] init fundamentals cache: %v", err)
	}

	pipeline := &briefing.Pipeline{
		Sync:         syncer,
		Fundamentals: fm,
		News:         &news.Aggregator{Fetcher: fetcher, Store: st},
		Watchlist:    cfg.Watchlist,
	}

	// Init scheduler
	sched := scheduler.NewScheduler(pipeline)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily run now")
		go sched.RunNow()
	}

	log.Println("[INFO] MorningBrief is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	log.Println("[INFO] MorningBrief stopped")
}
