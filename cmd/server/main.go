package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	emailPkg "indvend/internal/adapters/email"
	web "indvend/internal/adapters/http"
	"indvend/internal/adapters/http/metrics"
	"indvend/internal/adapters/storage"
	attendanceStore "indvend/internal/adapters/storage/attendance"
	"indvend/internal/adapters/storage/localstore"
	"indvend/internal/application/workspace"
	"indvend/internal/config"
	"indvend/internal/domain/attendance"
	"indvend/internal/domain/catalog"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("startup_failed", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Local storage: SQLite when a path is configured, memory otherwise.
	var (
		items  localstore.Store
		health func(context.Context) error
	)
	if cfg.DBPath != "" {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := storage.InitDB(db); err != nil {
			return err
		}
		timedDB := storage.NewTimedDB(db, m, cfg.SlowQuery)
		items = localstore.NewSQLiteStore(timedDB)
		health = timedDB.PingContext
		slog.Info("storage_event", "event", "sqlite_ready", "path", cfg.DBPath)
	} else {
		items = localstore.NewMemoryStore()
		slog.Warn("storage_event", "event", "memory_store", "detail", "attendance is lost on restart")
	}
	ledgers := attendanceStore.NewLedgerStore(items)

	registry := workspace.NewRegistry(workspace.RegistryDeps{
		Ledgers:    ledgers,
		GenerateID: uuid.NewString,
		OnChange:   m.SetWorkspaces,
	})
	registry.StartSweep(ctx, time.Minute, cfg.IdleDevice)

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		slog.Info("email_event", "event", "sender_configured", "provider", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.Production() {
			slog.Warn("email_event", "event", "sender_configured", "provider", "noop", "detail", "INDVEND_RESEND_KEY is not set, booking emails are disabled")
		} else {
			slog.Info("email_event", "event", "sender_configured", "provider", "noop")
		}
	}

	handler := web.NewMux(ctx, web.Deps{
		Workspaces:    registry,
		Ledgers:       ledgers,
		Catalog:       catalog.Default(),
		EmailSender:   sender,
		Metrics:       m,
		Location:      cfg.Location,
		CSRFKey:       cfg.CSRFKey,
		SecureCookies: cfg.Production(),
		RateLimit:     cfg.RateLimit,
		SlowRequest:   cfg.SlowRequest,
		Health:        health,
		GenerateID:    uuid.NewString,
		ChainHash:     attendance.NewChainHash,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_event", "event", "listening", "version", version, "addr", cfg.Addr, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("server_event", "event", "shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
