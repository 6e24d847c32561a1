package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apianalysis "github.com/DanielEliad/powerworld/api/analysis"
	apibuses "github.com/DanielEliad/powerworld/api/buses"
	apiloads "github.com/DanielEliad/powerworld/api/loads"
	"github.com/DanielEliad/powerworld/config"
	"github.com/DanielEliad/powerworld/core/analysis"
	"github.com/DanielEliad/powerworld/core/busconfig"
	"github.com/DanielEliad/powerworld/core/events"
	"github.com/DanielEliad/powerworld/core/loads"
	coremonitoring "github.com/DanielEliad/powerworld/core/monitoring"
	"github.com/DanielEliad/powerworld/infra/logger"
	"github.com/DanielEliad/powerworld/infra/metrics"
	"github.com/DanielEliad/powerworld/infra/monitoring"
	"github.com/DanielEliad/powerworld/internal/eventbus"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Service wires the analyzer, the load move engine and the HTTP API.
type Service struct {
	cfg      *config.Config
	registry *busconfig.Registry
	store    *loads.Store
	engine   *loads.Engine
	analyzer *analysis.Analyzer
	bus      *eventbus.Bus[events.Event]
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	monitor, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry monitor: %w", err)
	}
	coremonitoring.Init(monitor)

	registry := busconfig.NewRegistry(cfg.Buses.Buses)
	registry.EnsureSeeded()

	store := loads.NewStore()
	bus := eventbus.New[events.Event]()
	engine := loads.NewEngine(store, cfg.Budget.LoadCostPerKWh, bus, logger.New("loads"))
	analyzer := analysis.New(registry, cfg.Batteries, cfg.Budget, cfg.Analysis, store, bus, logger.New("analysis"))

	return &Service{
		cfg:      cfg,
		registry: registry,
		store:    store,
		engine:   engine,
		analyzer: analyzer,
		bus:      bus,
		log:      logg,
	}, nil
}

// Routes builds the API mux.
func (s *Service) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/analyze/lines", apianalysis.NewLinesHandler(s.analyzer))
	mux.Handle("/api/analyze/generators", apianalysis.NewGeneratorsHandler(s.analyzer))
	mux.Handle("/api/analyze/buses", apianalysis.NewBusesHandler(s.analyzer))
	mux.Handle("/api/analyze/loads", apianalysis.NewLoadsHandler(s.analyzer))
	mux.Handle("/api/analyze", apianalysis.NewCombinedHandler(s.analyzer))
	mux.Handle("/api/generators/update-battery", apianalysis.NewUpdateBatteryHandler(s.analyzer))
	mux.Handle("/api/generators/reconstruct", apianalysis.NewReconstructHandler())
	mux.Handle("/api/loads/move", apiloads.NewMoveHandler(s.engine))
	mux.Handle("/api/loads/reset", apiloads.NewResetHandler(s.engine))
	mux.Handle("/api/buses/config", apibuses.NewConfigHandler(s.registry))
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok", "version": Version})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]string{
			"message": "PowerWorld Simulation Analyzer API",
			"status":  "running",
		})
	})
	return s.middleware(mux)
}

// middleware tags every request with an ID and answers CORS preflights. The
// UI is served from another origin, so the API allows all.
func (s *Service) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.log.Debugw("request", map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": id,
		})
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go s.audit(ctx, s.bus.Subscribe())

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prometheus server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: s.Routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()

	s.log.Infof("listening on %s", s.cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// audit logs every event published on the bus.
func (s *Service) audit(ctx context.Context, sub <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sub:
			if !ok {
				return
			}
			switch ev := e.(type) {
			case events.AnalysisCompleted:
				s.log.Infof("analysis %s completed: %d errors, %d warnings in %s", ev.Kind, ev.Issues, ev.Warnings, ev.Duration)
			case events.LoadsMoved:
				s.log.Infof("committed %d load moves: %.2f kWh redistributed, cost %.2f", ev.Operations, ev.EnergyMovedKWh, ev.LoadCost)
			case events.WorkingStateReset:
				s.log.Infof("load working state reset to defaults")
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	coremonitoring.Flush(2 * time.Second)
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
