// Package main is the entry point for the SeleneKV server application.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ASHISH26940/selenekv/internal/config"
	"github.com/ASHISH26940/selenekv/internal/server"
	"github.com/ASHISH26940/selenekv/internal/store"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-metrics"
)

func main() {
	// --- Configuration and Flags ---
	configFile := flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	cfg := config.New()
	if err := cfg.Load(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "selenekv",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	// --- Metrics Setup ---
	// In-memory sink, dumped to stderr on SIGUSR1.
	sink := metrics.NewInmemSink(10*time.Second, time.Minute)
	metrics.DefaultInmemSignal(sink)
	if _, err := metrics.NewGlobal(metrics.DefaultConfig("selenekv"), sink); err != nil {
		logger.Error("Failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// --- Initialize Store and Start the HTTP Server ---
	st := store.NewStore()
	srv := server.New(st, logger.Named("server"))

	httpAddr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logger.Info("Starting HTTP server", "addr", httpAddr)
	if err := http.ListenAndServe(httpAddr, srv); err != nil {
		logger.Error("HTTP server failed", "error", err)
		os.Exit(1)
	}
}
