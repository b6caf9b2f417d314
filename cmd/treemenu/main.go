package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mchmarny/treemenu/pkg/config"
	"github.com/mchmarny/treemenu/pkg/logger"
	"github.com/mchmarny/treemenu/pkg/menu"
	"github.com/mchmarny/treemenu/pkg/metric"
	"github.com/mchmarny/treemenu/pkg/render"
	"github.com/mchmarny/treemenu/pkg/server"
	"github.com/mchmarny/treemenu/pkg/site"
	"github.com/mchmarny/treemenu/pkg/store"
)

const name = "treemenu"

var (
	version = "v0.0.0" // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"   // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown"
)

// defaultSite mirrors the demo pages and is used when no site file is given.
//
//go:embed site.yaml
var defaultSite []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "Port to run the server on")
	flag.StringVar(&cfg.DSN, "db", cfg.DSN, "SQLite data source name")
	flag.StringVar(&cfg.SiteFile, "site", cfg.SiteFile, "YAML file with routes and menus")
	flag.StringVar(&cfg.MenuName, "menu", cfg.MenuName, "Menu drawn on every page")
	flag.Parse()

	logger.SetDefaultLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting "+name, "commit", commit, "date", date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	s, err := loadSite(cfg.SiteFile)
	if err != nil {
		return err
	}

	routes, err := s.RouteTable()
	if err != nil {
		return fmt.Errorf("invalid routes: %w", err)
	}

	db, err := store.Open(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	if err := db.Seed(ctx, s); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	builder := menu.NewBuilder(db, routes,
		menu.WithCounter(metric.NewRenderCounter(reg)))

	pages, err := render.New(routes)
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithPort(cfg.Port),
		server.WithErrorLog(logger.NewLogLogger(slog.LevelError, false)),
		server.WithSimpleHealth(),
		server.WithReadiness(db),
		server.WithMetrics(reg),
	}

	site.New(builder, pages, routes, cfg.MenuName).RegisterHandlers(
		func(pattern string, h http.Handler) {
			opts = append(opts, server.WithHandler(pattern, h))
		})

	return server.New(opts...).Serve(ctx)
}

func loadSite(path string) (*store.Site, error) {
	if path == "" {
		return store.ParseSite(defaultSite)
	}

	return store.LoadSite(path)
}
