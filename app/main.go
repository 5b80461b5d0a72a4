package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/bib-comb/app/api"
	"github.com/lysyi3m/bib-comb/app/bibtex"
	"github.com/lysyi3m/bib-comb/app/cfg"
	"github.com/lysyi3m/bib-comb/app/database"
	"github.com/lysyi3m/bib-comb/app/normalize"
	"github.com/lysyi3m/bib-comb/app/tables"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("bib-comb failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	appCfg, err := cfg.Load(args)
	if err != nil {
		return err
	}
	if appCfg == nil {
		// Help was shown
		return nil
	}

	setupLogging(appCfg.Debug)
	slog.Debug("Configuration loaded", "version", appCfg.Version, "file", appCfg.File, "tables", appCfg.TablesPath)

	t, err := tables.NewLoader(appCfg.TablesPath).Run()
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}

	var repo database.PublicationRepositoryInterface
	if appCfg.DBPath != "" {
		db, err := database.Open(appCfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = database.NewPublicationRepository(db)
	}

	parser := bibtex.NewParser()
	pipeline := normalize.NewPipeline(t)

	if appCfg.ServeMode() {
		return serve(appCfg, api.NewHandler(parser, pipeline, repo, appCfg.Version))
	}

	return convert(appCfg, parser, pipeline, repo, stdout)
}

// convert renders the whole bibliography before writing anything, so a
// failure leaves stdout empty.
func convert(appCfg *cfg.Cfg, parser *bibtex.Parser, pipeline *normalize.Pipeline,
	repo database.PublicationRepositoryInterface, stdout io.Writer) error {
	data, err := os.ReadFile(appCfg.File)
	if err != nil {
		return fmt.Errorf("failed to read bibliography: %w", err)
	}

	raw, err := parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", appCfg.File, err)
	}

	entries := pipeline.Run(raw)

	if repo != nil {
		if err := repo.ReplaceAll(entries); err != nil {
			return err
		}
		slog.Debug("Publications stored", "db", appCfg.DBPath, "count", len(entries))
	}

	var buf bytes.Buffer
	if err := normalize.Render(&buf, entries, appCfg.Indent); err != nil {
		return err
	}

	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	slog.Debug("Bibliography converted", "file", appCfg.File, "entries", len(entries))

	return nil
}

func serve(appCfg *cfg.Cfg, handler *api.Handler) error {
	httpServer := &http.Server{
		Addr:         appCfg.Listen,
		Handler:      api.NewServer(handler, appCfg.APIAccessKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "address", appCfg.Listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case serveErr = <-serverErrChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	return serveErr
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
