package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/armonia/backend/internal/application/billing"
	complexapp "github.com/armonia/backend/internal/application/complexes"
	identityapp "github.com/armonia/backend/internal/application/identity"
	pqrapp "github.com/armonia/backend/internal/application/pqr"
	propertyapp "github.com/armonia/backend/internal/application/property"
	"github.com/armonia/backend/internal/infrastructure/auth"
	"github.com/armonia/backend/internal/infrastructure/cache"
	"github.com/armonia/backend/internal/infrastructure/config"
	"github.com/armonia/backend/internal/infrastructure/logger"
	"github.com/armonia/backend/internal/infrastructure/persistence"
	"github.com/armonia/backend/internal/infrastructure/scheduler"
	"github.com/armonia/backend/internal/infrastructure/telemetry"
	"github.com/armonia/backend/internal/interfaces/http/handler"
	"github.com/armonia/backend/internal/interfaces/http/middleware"
	"github.com/armonia/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

const featureAccessCacheTTL = 5 * time.Minute

//	@title			Armonía API
//	@version		1.0
//	@description	Plataforma de administración de conjuntos residenciales
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting armonia backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("tracer shutdown failed", zap.Error(err))
		}
	}()

	// Database
	gormLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, gormLevel)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Warn("database tracing unavailable", zap.Error(err))
		}
	}
	log.Info("database connected")

	// Feature access cache: Redis when reachable, in-process otherwise
	var featureCache cache.FeatureAccessCache
	redisCache, err := cache.NewRedisFeatureAccessCache(cfg.Redis, featureAccessCacheTTL, log)
	if err != nil {
		log.Warn("redis unavailable, using in-memory feature cache", zap.Error(err))
		featureCache = cache.NewInMemoryFeatureAccessCache(featureAccessCacheTTL)
	} else {
		featureCache = redisCache
	}

	// Repositories
	complexRepo := persistence.NewGormComplexRepository(db.DB)
	planFeatureRepo := persistence.NewGormPlanFeatureRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	feeRepo := persistence.NewGormFeeRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	activityRepo := persistence.NewGormActivityLogRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)

	complexService := complexapp.NewService(complexRepo, planFeatureRepo, featureCache, activityRepo, cfg.Billing.TrialDays, log)
	if err := complexService.SeedPlanFeatures(ctx); err != nil {
		log.Fatal("failed to seed plan features", zap.Error(err))
	}

	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	propertyService := propertyapp.NewService(propertyRepo, log)
	feeService := billingapp.NewFeeService(feeRepo)
	billingTxScope := persistence.NewGormBillingTransactionScope(db.DB)
	billingService := billingapp.NewService(billRepo, paymentRepo, feeRepo, propertyRepo, activityRepo, billingTxScope, complexService, cfg.Billing, log)
	pqrService := pqrapp.NewService(ticketRepo, commentRepo, complexRepo, userRepo, activityRepo, complexService, log)

	lateFeeScheduler := scheduler.NewLateFeeScheduler(scheduler.DefaultLateFeeSchedulerConfig(), billingService, complexRepo, log)
	if err := lateFeeScheduler.Start(ctx); err != nil {
		log.Fatal("failed to start late fee scheduler", zap.Error(err))
	}

	// HTTP
	engine := router.NewEngine(router.EngineConfig{
		ServiceName:    cfg.App.Name,
		Environment:    cfg.App.Env,
		AllowedOrigins: cfg.HTTP.CORSAllowOrigins,
	}, log)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	authHandler := handler.NewAuthHandler(authService, userService, complexService)

	r := router.NewRouter(engine, middleware.Auth(jwtService, log))
	r.Public(
		handler.NewSystemHandler(db.DB, version),
		router.RegistrarFunc(authHandler.RegisterPublicRoutes),
	)
	r.Protected(
		authHandler,
		handler.NewUserHandler(userService),
		handler.NewComplexHandler(complexService),
		handler.NewPropertyHandler(propertyService),
		handler.NewFeeHandler(feeService),
		handler.NewBillingHandler(billingService),
		handler.NewPQRHandler(pqrService),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := lateFeeScheduler.Stop(shutdownCtx); err != nil {
		log.Error("late fee scheduler shutdown", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}
