package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Harshdeep9881/hospitalos/internal/auth"
	"github.com/Harshdeep9881/hospitalos/internal/dashboard"
	"github.com/Harshdeep9881/hospitalos/internal/records"
	"github.com/Harshdeep9881/hospitalos/internal/registry"
	"github.com/Harshdeep9881/hospitalos/internal/scheduling"
	"github.com/Harshdeep9881/hospitalos/pkg/config"
	"github.com/Harshdeep9881/hospitalos/pkg/database"
	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/monitoring"
)

// Server composes the hospital administration services behind one router
type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.DB
	server *http.Server
}

// New connects to the database, ensures the schema exists and wires every
// service onto the router.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &Server{
		config: cfg,
		logger: log,
		db:     db,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.buildRouter(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return s, nil
}

func (s *Server) buildRouter() http.Handler {
	router := mux.NewRouter()

	authService := auth.New(s.config, s.logger)
	schedulingService := scheduling.New(scheduling.NewRepository(s.db.DB, s.logger), s.logger)
	registryService := registry.New(registry.NewRepository(s.db.DB, s.logger), s.logger)
	recordsService := records.New(records.NewRepository(s.db.DB, s.logger), s.logger)
	dashboardService := dashboard.New(dashboard.NewRepository(s.db.DB, s.logger), s.logger)

	// Operational endpoints stay outside the auth boundary
	healthManager := monitoring.NewHealthManager("hospitalos")
	healthManager.Register("database", &monitoring.DatabaseHealthChecker{
		Name: "database",
		Ping: func(ctx context.Context) error { return s.db.PingContext(ctx) },
	})
	router.Handle(s.config.Monitoring.HealthPath, healthManager.Handler()).Methods("GET")
	if s.config.Monitoring.Enabled {
		router.Handle(s.config.Monitoring.MetricsPath, monitoring.MetricsHandler()).Methods("GET")
	}
	router.HandleFunc("/", s.rootHandler).Methods("GET")

	authService.RegisterRoutes(router)

	api := router.PathPrefix("").Subrouter()
	if s.config.Auth.ProtectAPI {
		api.Use(authService.Middleware)
	}
	schedulingService.RegisterRoutes(api)
	registryService.RegisterRoutes(api)
	recordsService.RegisterRoutes(api)
	dashboardService.RegisterRoutes(api)

	var handler http.Handler = router
	handler = monitoring.HTTPMiddleware(s.logger)(handler)
	handler = securityHeadersMiddleware(handler)
	handler = corsMiddleware(handler)

	return handler
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Hospital administration API is running"))
}

// Start begins serving requests and blocks until the listener closes
func (s *Server) Start() error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting hospital administration server")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and closes the database connection
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s.logger.Info("Stopping hospital administration server")
	if err := s.server.Shutdown(ctx); err != nil {
		s.db.Close()
		return err
	}

	return s.db.Close()
}
