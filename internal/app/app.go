// Package app wires the stores, retention scheduler and HTTP server into a
// runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"familyconnect/internal/retention"
	"familyconnect/internal/seed"
	"familyconnect/pkg/api"
	"familyconnect/pkg/api/handlers"
	"familyconnect/pkg/assistant"
	"familyconnect/pkg/banner"
	"familyconnect/pkg/blocklist"
	"familyconnect/pkg/chat"
	"familyconnect/pkg/config"
	"familyconnect/pkg/logger"
	"familyconnect/pkg/models"
	"familyconnect/pkg/notify"
	"familyconnect/pkg/plan"
	"familyconnect/pkg/status"
	"familyconnect/pkg/store"
)

// App encapsulates the server components and lifecycle.
type App struct {
	cfg     *config.Config
	source  string
	version string

	chats         *chat.Store
	statuses      *status.Store
	plans         *plan.Store
	notifications *notify.Store
	blocked       *blocklist.Set
	members       []models.FamilyMember

	stopRetention context.CancelFunc
	srv           *http.Server
}

// New opens the database, seeds it on first run and loads every store. It
// does not start the scheduler or the HTTP server; call Run for those.
func New(cfg *config.Config, source, version string) (*App, error) {
	_ = godotenv.Load(".env")

	if err := store.Open(cfg.Server.DBPath); err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", cfg.Server.DBPath, err)
	}

	seeded, err := seed.Run()
	if err != nil {
		return nil, fmt.Errorf("seed failed: %w", err)
	}
	if seeded {
		logger.Info("seed_applied", "db", cfg.Server.DBPath)
	}

	a := &App{cfg: cfg, source: source, version: version}
	a.members = seed.Members()
	a.blocked = blocklist.Load()

	var completer assistant.Completer
	if cfg.Assistant.Endpoint != "" {
		completer = assistant.NewClient(cfg.Assistant, cfg.AssistantAPIKey())
	}
	a.chats = chat.New(a.blocked, completer, cfg.AssistantOnline)

	lifetime := cfg.Retention.Lifetime.Duration()
	a.statuses = status.New(status.WithLifetime(lifetime))
	a.plans = plan.New()
	a.notifications = notify.New()
	return a, nil
}

// Run starts the retention scheduler and the HTTP server and blocks until
// ctx is canceled or a fatal server error occurs. On shutdown it drains
// pending assistant replies and closes the store.
func (a *App) Run(ctx context.Context) error {
	stop, err := retention.Start(ctx, a.cfg.Retention, a.statuses)
	if err != nil {
		return fmt.Errorf("retention scheduler: %w", err)
	}
	a.stopRetention = stop

	banner.Print(a.cfg, a.version, a.source)

	errCh := a.startHTTP()

	select {
	case <-ctx.Done():
		a.shutdown()
		return nil
	case err := <-errCh:
		a.shutdown()
		return err
	}
}

// currentUser is the member acting when a request carries no member header.
// The directory is seeded with the device owner first.
func (a *App) currentUser() models.FamilyMember {
	if len(a.members) > 0 {
		return a.members[0]
	}
	return models.FamilyMember{ID: "1", Name: "Unknown", Role: models.RoleParent}
}

func (a *App) startHTTP() <-chan error {
	deps := handlers.Deps{
		Members:       a.members,
		CurrentUser:   a.currentUser(),
		Chats:         a.chats,
		Statuses:      a.statuses,
		Plans:         a.plans,
		Notifications: a.notifications,
		Blocked:       a.blocked,
	}
	a.srv = &http.Server{Addr: a.cfg.Addr(), Handler: api.NewRouter(a.cfg, deps)}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_listening", "addr", a.cfg.Addr())
		errCh <- a.srv.ListenAndServe()
	}()
	return errCh
}

func (a *App) shutdown() {
	if a.stopRetention != nil {
		a.stopRetention()
	}
	if a.srv != nil {
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := a.srv.Shutdown(shCtx); err != nil {
			logger.Error("http_shutdown_error", "error", err)
		}
		cancel()
	}
	// let in-flight assistant replies land before the store closes
	a.chats.Wait()
	if err := store.Close(); err != nil {
		logger.Error("store_close_error", "error", err)
	}
	logger.Info("shutdown_complete")
}
