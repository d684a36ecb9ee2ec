package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keebindex/keebindex/app/cfg"
	"github.com/keebindex/keebindex/app/config"
	"github.com/keebindex/keebindex/app/connector"
	"github.com/keebindex/keebindex/app/normalize"
	"github.com/keebindex/keebindex/app/pipeline"
	"github.com/keebindex/keebindex/app/store"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	slog.Info("Starting scrape run", "version", appCfg.Version, "sources_file", appCfg.SourcesFile, "data_file", appCfg.DataFile)

	sources, err := config.Load(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load source configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("Source configuration loaded", "vendors", len(sources.Vendors), "reddit_feeds", len(sources.Reddit.Feeds))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	delay := time.Duration(appCfg.RequestDelay) * time.Millisecond
	client := connector.NewClient(time.Duration(appCfg.HTTPTimeout)*time.Second, appCfg.UserAgent)
	norm := normalize.New()

	// Product sources first, then the promotional listing sources. The
	// declaration order decides merge precedence.
	var connectors []connector.Source
	for _, vendor := range sources.Vendors {
		connectors = append(connectors, connector.NewShopify(vendor, client, norm, delay))
	}
	if sources.GeekHack.URL != "" {
		connectors = append(connectors, connector.NewGeekHack(sources.GeekHack.URL, client, norm))
	}
	if len(sources.Reddit.Feeds) > 0 {
		connectors = append(connectors, connector.NewReddit(sources.Reddit.Feeds, client, norm, delay))
	}

	runner := pipeline.NewRunner(store.New(appCfg.DataFile), connectors, sources.VendorList(), delay)

	if _, err := runner.Run(ctx); err != nil {
		slog.Error("Scrape run failed", "error", err)
		os.Exit(1)
	}
}
