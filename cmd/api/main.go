package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pousada/internal/api"
	"pousada/internal/apperr"
	"pousada/internal/config"
	"pousada/internal/events"
	"pousada/internal/export"
	"pousada/internal/logging"
	"pousada/internal/metrics"
	"pousada/internal/models"
	"pousada/internal/service"
	"pousada/internal/store"
	"pousada/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	entityStore, storeCloser, err := initStore(cfg, &logger)
	if err != nil {
		return err
	}
	if storeCloser != nil {
		defer (func() { _ = storeCloser.Close() })()
	}

	data := store.NewCollections(entityStore)
	bus := events.NewEventBus()
	subscribeEventLogging(bus, &logger)

	exportWorker := initExports(cfg, data, &logger)

	guests := service.NewGuestService(data, bus, &logger)
	rooms := service.NewRoomService(data, bus, &logger)
	var exporter service.ExportQueue
	if exportWorker != nil {
		exporter = exportWorker
	}
	bookings := service.NewBookingService(data, bus, exporter, &logger)
	dashboard := service.NewDashboardService(data, &logger)

	if err := seedRooms(cfg, rooms, &logger); err != nil {
		return err
	}

	if !cfg.API.Enabled {
		logger.Warn().Msg("API is disabled in config, but starting API application. Check your config.")
	}

	httpServer := api.NewHTTPServer(cfg.API, guests, rooms, bookings, dashboard, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)

	if exportWorker != nil {
		go exportWorker.Start(ctx)
	}

	return startServer(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// initStore builds the configured backend. The redis backend degrades to an
// in-memory fallback through the failover wrapper instead of refusing to start.
func initStore(cfg *config.Config, logger *zerolog.Logger) (store.Store, io.Closer, error) {
	switch cfg.Store.Backend {
	case "memory":
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), nil, nil

	case "redis":
		client := store.NewRedisClient(cfg.Store.Redis)
		if err := store.Ping(context.Background(), client); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable at startup, failover will retry")
		} else {
			logger.Info().Str("addr", cfg.Store.Redis.Address).Msg("redis connected")
		}
		primary := store.NewRedisStore(client)
		failover := store.NewFailoverStore(primary, store.NewMemoryStore(), logger)
		return failover, redisCloser{client: client}, nil

	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Store.SQLite.Path)
		if err != nil {
			logger.Error().Err(err).Str("path", cfg.Store.SQLite.Path).Msg("init sqlite store")
			return nil, nil, err
		}
		logger.Info().Str("path", cfg.Store.SQLite.Path).Msg("sqlite store opened")
		return s, s, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}

type redisCloser struct {
	client interface{ Close() error }
}

func (c redisCloser) Close() error { return c.client.Close() }

func initExports(cfg *config.Config, data *store.Collections, logger *zerolog.Logger) *worker.ExportWorker {
	if !cfg.Exports.Enabled {
		return nil
	}

	path := cfg.Exports.Path
	writer := export.NewExcelWriter(path + "/pousada.xlsx")
	workerLogger := logger.With().Str("component", "export-worker").Logger()
	return worker.NewExportWorker(data, writer, worker.RetryPolicy{}, &workerLogger)
}

// seedRooms creates the rooms listed in the optional seed file. Numbers
// already present are skipped, so the file is safe to keep across restarts.
func seedRooms(cfg *config.Config, rooms *service.RoomService, logger *zerolog.Logger) error {
	if cfg.Seed.RoomsFile == "" {
		return nil
	}

	data, err := os.ReadFile(cfg.Seed.RoomsFile)
	if err != nil {
		logger.Error().Err(err).Str("rooms_file", cfg.Seed.RoomsFile).Msg("read seed rooms")
		return err
	}

	var seedFile struct {
		Rooms []struct {
			Number      string   `yaml:"number"`
			Type        string   `yaml:"type"`
			Floor       int      `yaml:"floor"`
			Capacity    int      `yaml:"capacity"`
			NightlyRate *float64 `yaml:"nightly_rate"`
		} `yaml:"rooms"`
	}
	if err := yaml.Unmarshal(data, &seedFile); err != nil {
		logger.Error().Err(err).Str("rooms_file", cfg.Seed.RoomsFile).Msg("parse seed rooms")
		return err
	}

	seeded := 0
	for _, r := range seedFile.Rooms {
		_, err := rooms.Create(context.Background(), models.RoomInput{
			Number:      r.Number,
			Type:        r.Type,
			Floor:       r.Floor,
			Capacity:    r.Capacity,
			NightlyRate: r.NightlyRate,
		})
		if errors.Is(err, apperr.ErrConflict) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed room %s: %w", r.Number, err)
		}
		seeded++
	}

	logger.Info().Int("seeded", seeded).Int("listed", len(seedFile.Rooms)).Msg("seed rooms processed")
	return nil
}

func subscribeEventLogging(bus *events.EventBus, logger *zerolog.Logger) {
	eventLogger := logger.With().Str("component", "events").Logger()
	handler := func(e *events.Event) error {
		eventLogger.Info().Str("type", e.Type).RawJSON("payload", e.Payload).Msg("event")
		return nil
	}

	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingUpdated,
		events.EventBookingDeleted,
		events.EventGuestDeleted,
		events.EventRoomStatusChanged,
	} {
		bus.Subscribe(eventType, handler)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Msg("server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
