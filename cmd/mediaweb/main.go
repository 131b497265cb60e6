package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/claes/mediaweb/internal/config"
	apphttp "github.com/claes/mediaweb/internal/http"
	"github.com/claes/mediaweb/internal/media"
)

func main() {
	// Flags
	var (
		configPath string
		envFile    string
		flags      config.Overrides
		debug      bool
	)
	flag.StringVar(&configPath, "config", "", "YAML config file (optional, or set MEDIAWEB_CONFIG)")
	flag.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to load if present")
	flag.StringVar(&flags.MediaRoot, "root", "", "media folder to serve (created if missing)")
	flag.StringVar(&flags.Host, "host", "", "interface to bind (default 0.0.0.0)")
	flag.StringVar(&flags.Port, "port", "", "port to listen on (default 5000, or set PORT env)")
	flag.StringVar(&flags.LogLevel, "log-level", "", "debug, info, warn or error")
	flag.StringVar(&flags.LogFormat, "log-format", "", "text or json")
	flag.BoolVar(&debug, "debug", false, "run gin in debug mode")
	flag.Parse()
	if flags.MediaRoot == "" && flag.NArg() > 0 {
		// accept positional arg if provided
		flags.MediaRoot = flag.Arg(0)
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "debug" {
			flags.Debug = &debug
		}
	})

	// Configure structured logging to stderr until the config says otherwise
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{})))

	cfg, err := config.Load(config.Sources{File: configPath, EnvFile: envFile, Flags: flags})
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	if err := cfg.Prepare(); err != nil {
		slog.Error("invalid media root", "root", cfg.MediaRoot, "err", err)
		os.Exit(1)
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	mux := apphttp.NewServer(cfg.MediaRoot, media.NewClassifier(cfg.Table()))

	addr := cfg.Addr()
	// No WriteTimeout: large media streams can take as long as the client needs.
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr, "root", cfg.MediaRoot)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		// proceed to shutdown
	case err := <-errCh:
		slog.Error("listen failed", "err", err)
		os.Exit(1)
	}
	slog.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("graceful shutdown failed", "err", err)
		_ = srv.Close()
	}
	slog.Info("server stopped")
}
