// Package main provides the entry point for the user directory service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adnanprojects/userdir/api"
	"github.com/adnanprojects/userdir/pkg/config"
	"github.com/adnanprojects/userdir/pkg/directory"
	"github.com/adnanprojects/userdir/pkg/logger"
	"github.com/adnanprojects/userdir/pkg/seed"
	"github.com/adnanprojects/userdir/pkg/session"
)

// Version information (set by build process)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile  = flag.String("config", "", "Path to configuration file")
	listenAddr  = flag.String("listen", "", "Listen address (overrides config)")
	logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	seedFake    = flag.Int("seed-fake", -1, "Number of generated users to add (overrides config)")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("userdir %s (%s)\n", Version, GitCommit)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "userdir: %v\n", err)
		os.Exit(1)
	}

	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *seedFake >= 0 {
		cfg.SeedFake = *seedFake
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "userdir: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewConsoleLogger(cfg.LogLevel)

	store := directory.NewStore()
	if cfg.SeedFixture {
		seed.Fixture(store)
	}
	if cfg.SeedFake > 0 {
		seed.Fake(store, cfg.SeedFake)
	}
	log.Info("directory ready", map[string]interface{}{"users": store.Len()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewManager(cfg.SessionTTL)
	sessions.StartSweeper(ctx, cfg.SessionSweepInterval, log)

	server := api.NewServer(cfg, log, store, sessions)

	if err := server.Start(ctx); err != nil {
		log.Fatal("http server failed", err)
	}

	log.Info("userdir stopped cleanly")
}
