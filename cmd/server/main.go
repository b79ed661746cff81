package main

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/analytics"
	"github.com/iliyamo/library-seat-monitor/internal/config"
	"github.com/iliyamo/library-seat-monitor/internal/detection"
	"github.com/iliyamo/library-seat-monitor/internal/handler"
	"github.com/iliyamo/library-seat-monitor/internal/logging"
	"github.com/iliyamo/library-seat-monitor/internal/middleware"
	"github.com/iliyamo/library-seat-monitor/internal/queue"
	"github.com/iliyamo/library-seat-monitor/internal/repository"
	"github.com/iliyamo/library-seat-monitor/internal/router"
	queue_publisher "github.com/iliyamo/library-seat-monitor/internal/service"
	"github.com/iliyamo/library-seat-monitor/internal/simulator"
	"github.com/iliyamo/library-seat-monitor/internal/timeutil"
	"github.com/iliyamo/library-seat-monitor/internal/viewport"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	simCfg := config.LoadSimulationConfig()
	detCfg := config.LoadDetectionConfig()
	vpCfg := config.LoadViewportConfig()
	msgCfg := config.LoadMessagingConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := timeutil.RealClock{}
	seed := uint64(simCfg.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	newRand := func(stream uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, stream)) }

	simRand := newRand(1)
	seats := repository.NewSeatRepo(simulator.GenerateSeats(simCfg.SeatsPerZone, simRand, clock.Now()))

	events := queue_publisher.NewPublisher(msgCfg, logger)
	sim := simulator.New(simCfg, seats, simRand, events, clock, logger)
	feed := detection.NewFeed(detCfg, seats, newRand(2), clock, logger)
	gen := analytics.NewGenerator(seats, newRand(3), clock)
	viewports := viewport.NewRegistry(vpCfg, clock, logger)

	go events.Run(ctx)
	go func() { _ = sim.Run(ctx) }()
	go viewports.Run(ctx)
	if msgCfg.Enabled && msgCfg.ConsumerEnabled {
		consumer := queue.NewConsumer(msgCfg.URL, msgCfg.Queue, msgCfg.LogPath, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("seat event consumer stopped", zap.Error(err))
			}
		}()
	}
	if detCfg.AutoStart {
		feed.Start(ctx)
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig(), logger)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.NewTokenBucketWithSkipper(config.LoadRateLimitConfig(), rdb, logger, middleware.IsGestureMove))

	router.RegisterRoutes(e, &handler.HealthHandler{Seats: seats, Sim: sim, Feed: feed, Viewports: viewports, Events: events})
	router.RegisterPublic(e,
		&handler.SeatHandler{Seats: seats, Log: logger},
		&handler.AnalyticsHandler{Gen: gen, Log: logger},
		&handler.DetectionHandler{Feed: feed, Base: ctx},
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)
	router.RegisterViewports(e, &handler.ViewportHandler{Registry: viewports, Log: logger},
		middleware.NewTokenBucket(config.LoadGestureRateLimitConfig(), rdb, logger))
	if cfg.StaffEnabled() {
		router.RegisterAuth(e, handler.NewAuthHandler(cfg))
		router.RegisterStaff(e, &handler.AdminHandler{Sim: sim, Log: logger}, cfg.JWTSecret)
	} else {
		logger.Info("staff routes disabled; set JWT_SECRET and STAFF_PASSWORD_HASH to enable")
	}

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.Int("seats", seats.Len()))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	feed.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("stopped", zap.Uint64("ticks", sim.Ticks()))
}
