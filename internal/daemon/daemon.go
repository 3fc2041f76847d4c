package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guildday/guildday/internal/api"
	"github.com/guildday/guildday/internal/app/checkin"
	"github.com/guildday/guildday/internal/app/cohort"
	"github.com/guildday/guildday/internal/app/engine"
	"github.com/guildday/guildday/internal/app/questgen"
	"github.com/guildday/guildday/internal/health"
	_ "github.com/guildday/guildday/internal/infra/metrics" // Register Prometheus metrics
	"github.com/guildday/guildday/internal/infra/sqlite"
)

// Daemon is the core GuildDay runtime. It wires together all services.
type Daemon struct {
	Config   Config
	DB       *sqlite.DB
	Engine   *engine.Engine
	Questgen *questgen.Service
	Cohorts  *cohort.Service
	Checkins *checkin.Service
	Health   *health.Checker
	Server   *api.Server
	cancel   context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	home := guilddayHome()
	db, err := sqlite.Open(home)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	eng := engine.New(db)
	eng.SetLookbackDays(cfg.Engine.StreakLookbackDays)

	d := &Daemon{
		Config:   cfg,
		DB:       db,
		Engine:   eng,
		Questgen: questgen.New(db),
		Cohorts:  cohort.New(db),
		Checkins: checkin.New(db),
		Health:   health.NewChecker(db, home),
	}

	srv := api.NewServer(db, d.Engine, d.Questgen, d.Cohorts, d.Checkins)
	srv.SetHealth(d.Health)
	srv.SetCronSecret(cfg.Engine.CronSecret)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker runs for the life of the server
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.Server.Host, d.Config.Server.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("GuildDay serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
