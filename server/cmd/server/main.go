package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/growthmate/growthmate/pkg/vaccine"
	"github.com/growthmate/growthmate/server/internal/api"
	"github.com/growthmate/growthmate/server/internal/config"
	"github.com/growthmate/growthmate/server/internal/metrics"
	"github.com/growthmate/growthmate/server/internal/store"
	"github.com/growthmate/growthmate/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	uiDir := flag.String("ui-dir", "", "serve the web UI static files from this directory; leave empty to disable")
	flag.Parse()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("growthmate-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Server.Level())

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"timezone", cfg.Server.Timezone,
		"profile_ttl", cfg.Server.Profiles.TTL,
		"stream_interval", cfg.Server.Stream.Interval,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Profile store with background TTL eviction.
	st := store.New(cfg.Server.Profiles.TTL)
	sched := vaccine.NewScheduler(cfg.Server.Location())
	reg := metrics.New(st.Count)

	// WebSocket hub: pushes the vaccination dashboard to UI clients.
	hub := ws.New(st, sched, cfg.Server.Stream.Interval)

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(st, api.Options{
		Scheduler:       sched,
		Metrics:         reg,
		ReminderLimit:   cfg.Server.Reminders.MaxPerMedication,
		AppointmentLead: cfg.Server.Reminders.AppointmentLead,
	}))
	httpMux.Handle("/metrics", reg.Handler())
	httpMux.Handle("/ws/dashboard", hub)

	// Optional: serve a pre-built single-page UI. Unknown paths fall back to
	// index.html.
	if *uiDir != "" {
		fs := http.FileServer(http.Dir(*uiDir))
		httpMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			path := *uiDir + r.URL.Path
			if _, err := os.Stat(path); os.IsNotExist(err) {
				http.ServeFile(w, r, *uiDir+"/index.html")
				return
			}
			fs.ServeHTTP(w, r)
		})
		slog.Info("serving UI static files", "dir", *uiDir)
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		st.Run(gctx)
		return nil
	})
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return config.Watch(gctx, *configPath, func(next *config.Config) {
			level.Set(next.Server.Level())
			st.SetTTL(next.Server.Profiles.TTL)
			slog.Info("config applied",
				"log_level", next.Server.LogLevel,
				"profile_ttl", next.Server.Profiles.TTL,
			)
		})
	})
	g.Go(func() error {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("growthmate-server shutting down")
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("growthmate-server stopped", "err", err)
		os.Exit(1)
	}
}
