package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rinex-ng/internal/config"
	"rinex-ng/internal/observability"
	"rinex-ng/internal/rinex"
	"rinex-ng/internal/store"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./dev.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var collector *observability.ParseCollector
	if cfg.Metrics.Listen != "" {
		collector, err = observability.NewParseCollector(nil)
		if err != nil {
			log.Fatalf("metrics init failed: %v", err)
		}
		go func() {
			log.Printf("metrics on http://%s/metrics", cfg.Metrics.Listen)
			if err := http.ListenAndServe(cfg.Metrics.Listen, collector.Handler()); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	res, err := loadOrParse(ctx, cfg)
	if err != nil {
		log.Fatalf("parse failed: %v", err)
	}
	if collector != nil {
		collector.Observe(res.Stats)
	}

	for _, line := range summarizeResult(res).lines() {
		log.Print(line)
	}

	if cfg.Store.Save != "" {
		if err := store.Save(cfg.Store.Save, res); err != nil {
			log.Fatalf("container save failed: %v", err)
		}
		log.Printf("container saved to %s", cfg.Store.Save)
	}
}

func loadOrParse(ctx context.Context, cfg config.Config) (*rinex.Result, error) {
	if cfg.Store.Load != "" {
		return store.Load(cfg.Store.Load)
	}
	f, err := os.Open(cfg.Input.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rinex.Parse(ctx, f, cfg.ParseOptions())
}
