// Package server wires configuration, storage and services into the HTTP
// server and owns its lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/calorix/backend/config"
	"github.com/pageza/calorix/backend/internal/api"
	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/middleware"
	"github.com/pageza/calorix/backend/internal/router"
	"github.com/pageza/calorix/backend/internal/service"
)

// Deps are the external resources the server runs on. Redis and Store are
// optional.
type Deps struct {
	DB     *gorm.DB
	Health func(ctx context.Context) error
	Redis  *redis.Client
	Store  service.ObjectStore
	Clock  fasting.Clock
}

// Server represents the HTTP server
type Server struct {
	cfg     *config.Config
	log     *zap.Logger
	router  *gin.Engine
	http    *http.Server
	monitor *fasting.Monitor
	fasting *service.FastingService
}

// New builds every service and the router.
func New(cfg *config.Config, log *zap.Logger, deps Deps) *Server {
	clock := deps.Clock
	if clock == nil {
		clock = fasting.SystemClock{}
	}
	monitor := fasting.NewMonitor(time.Duration(cfg.FastingTickSeconds)*time.Second, clock)

	db := deps.DB
	authService := service.NewAuthService(db, cfg.JWTSecret, log)
	summaryService := service.NewSummaryService(db, deps.Redis, log)
	notificationService := service.NewNotificationService(db, deps.Redis, log)
	challengeService := service.NewChallengeService(db, clock, notificationService, log)
	logService := service.NewLogService(db, clock, summaryService, challengeService, log)
	fastingService := service.NewFastingService(db, clock, monitor, notificationService, log)

	services := api.Services{
		Auth:          authService,
		Profile:       service.NewProfileService(db, clock, summaryService, log),
		Logs:          logService,
		Summary:       summaryService,
		Fasting:       fastingService,
		Challenges:    challengeService,
		Notifications: notificationService,
		Export:        service.NewExportService(logService, deps.Store, log),
		Estimator:     service.NewEstimatorService(cfg.EstimatorURL, cfg.EstimatorAPIKey, cfg.EstimatorModel, deps.Redis, log),
		Clock:         clock,
	}
	if deps.Redis != nil {
		services.EstimateLimiter = middleware.NewEstimateRateLimiter(deps.Redis, cfg.EstimateRateLimit, log)
	}

	r := router.SetupRouter(log, cfg.CORSOrigins, services, deps.Health)
	return &Server{
		cfg:    cfg,
		log:    log,
		router: r,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		monitor: monitor,
		fasting: fastingService,
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start resumes running fasts and serves HTTP until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if err := s.fasting.Resume(ctx); err != nil {
		return fmt.Errorf("resume fasting monitors: %w", err)
	}

	s.log.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and cancels
// every fasting monitor.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.monitor.Close()
	return err
}
