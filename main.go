// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/weekly-pick/auth"
	"github.com/danielhkuo/weekly-pick/cliparse"
	"github.com/danielhkuo/weekly-pick/cycle"
	"github.com/danielhkuo/weekly-pick/db"
	"github.com/danielhkuo/weekly-pick/router"
	"github.com/danielhkuo/weekly-pick/scheduler"
	"github.com/danielhkuo/weekly-pick/weeks"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout *os.File) error {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	if cfg.PrintAdminKey {
		fmt.Fprintln(stdout, auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt))
		return nil
	}

	slog.SetDefault(newLogger(stdout, cfg.LogLevel))

	dbConn, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	store := db.NewStore(dbConn)
	svc := weeks.NewService(store, cycle.NewCalendar(cfg.Location))

	week, err := svc.Bootstrap(ctx, svc.Now())
	if err != nil {
		// The scheduler retries on its first tick.
		slog.Error("bootstrap failed", "error", err)
	} else {
		slog.Info("Current week", "cycle", week.Cycle().String(), "closes_at", week.EndAt.In(cfg.Location).Format(time.RFC3339))
	}

	server := &http.Server{
		Handler:           router.NewRouter(store, svc, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return scheduler.New(svc, cfg.RolloverInterval).Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newLogger writes text to a terminal and JSON everywhere else.
func newLogger(out *os.File, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

func openDB(ctx context.Context, cfg cliparse.Config) (*sql.DB, error) {
	dsn := cfg.DatabaseURL
	if cfg.DatabaseType == "sqlite" {
		dsn = sqliteDSN(dsn)
	}

	dbConn, err := sql.Open(cfg.DatabaseType, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.DatabaseType, err)
	}

	if cfg.DatabaseType == "sqlite" {
		// SQLite allows one writer at a time
		dbConn.SetMaxOpenConns(1)
	}

	if err := dbConn.PingContext(ctx); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("pinging %s: %w", cfg.DatabaseType, err)
	}
	return dbConn, nil
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per connection.
// An explicit foreign_keys pragma in the URL is kept as given.
func sqliteDSN(url string) string {
	if strings.Contains(url, "foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}
