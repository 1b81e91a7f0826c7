package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docfmt/internal/api"
	"github.com/dgallion1/docfmt/internal/cms"
	"github.com/dgallion1/docfmt/internal/config"
	"github.com/dgallion1/docfmt/internal/parser"
	"github.com/dgallion1/docfmt/internal/pipeline"
	"github.com/dgallion1/docfmt/internal/rewrite"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	cfg := config.Load()
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug("maxprocs", "msg", fmt.Sprintf(format, args...))
	}))

	var rules *config.Rules
	if cfg.RulesFile != "" {
		rules, err = config.LoadRules(cfg.RulesFile)
		if err != nil {
			log.Error("invalid rules file", "path", cfg.RulesFile, "error", err)
			os.Exit(1)
		}
		log.Info("rules loaded", "path", cfg.RulesFile, "proper_nouns", len(rules.ProperNouns), "style_map", len(rules.StyleMap))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize pipeline.
	proc := pipeline.NewProcessor(&parser.DocxConverter{}, rewrite.New(rules.Normalizer()), rules.StyleMappings(), cfg.MaxUploadBytes, log)
	svc := pipeline.NewService(cfg, proc, log)
	svc.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(svc, cms.Unimplemented{}, rules.DefaultOptions(), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		svc.Stop()
	}()

	log.Info("starting docfmt", "port", cfg.Port, "max_upload_bytes", cfg.MaxUploadBytes)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
