// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"fleetride-service/internal/config"
	"fleetride-service/internal/db"
	bookingDomain "fleetride-service/internal/domain/booking"
	authHandler "fleetride-service/internal/handlers/auth"
	bookingHandler "fleetride-service/internal/handlers/booking"
	carHandler "fleetride-service/internal/handlers/car"
	dashboardHandler "fleetride-service/internal/handlers/dashboard"
	driverHandler "fleetride-service/internal/handlers/driver"
	paymentHandler "fleetride-service/internal/handlers/payment"
	"fleetride-service/internal/middleware"
	"fleetride-service/internal/pkg/jwt"
	"fleetride-service/internal/pkg/ratelimit"
	"fleetride-service/internal/repository/postgres"
	authService "fleetride-service/internal/service/auth"
	bookingService "fleetride-service/internal/service/booking"
	carService "fleetride-service/internal/service/car"
	dashboardService "fleetride-service/internal/service/dashboard"
	driverService "fleetride-service/internal/service/driver"
	paymentService "fleetride-service/internal/service/payment"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg        config.AppConfig
	engine     *gin.Engine
	logger     *zap.Logger
	pool       *pgxpool.Pool
	cache      *redis.Client
	reconciler *bookingService.Reconciler
}

func NewServer(logger *zap.Logger) *Server {
	return &Server{
		cfg:    config.Load(),
		engine: gin.New(),
		logger: logger,
	}
}

// Start wires storage, services and routes, launches the reconciler and
// serves HTTP until the process exits.
func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.PostgresURL(), s.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	s.pool = pool

	// ----- Redis -----
	cache, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.cache = cache

	// ----- JWT -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build jwt manager: %w", err)
	}

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	carRepo := postgres.NewCarRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)

	// ----- Services -----
	authSvc := authService.NewAuthService(userRepo, jwtManager, s.logger)
	carSvc := carService.NewCarService(carRepo, s.logger)
	driverSvc := driverService.NewDriverService(driverRepo, userRepo, s.logger)
	bookingSvc := bookingService.NewBookingService(
		bookingRepo, carRepo, driverRepo, userRepo, s.cfg.RideBaseFare, s.logger)
	paymentSvc := paymentService.NewPaymentService(paymentRepo, bookingRepo, s.logger)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, s.logger)

	// ----- Reconciler -----
	s.reconciler = bookingService.NewReconciler(carRepo, driverRepo, s.cfg.ReconcileMinAge, s.logger)
	if err := s.reconciler.Start(s.cfg.ReconcileSchedule); err != nil {
		return fmt.Errorf("failed to start reconciler: %w", err)
	}

	// ----- Rate limiter -----
	limiter := ratelimit.NewLimiter(cache, s.cfg.BookingRateLimit, s.cfg.BookingRateWindow)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	s.engine.Use(
		middleware.RecoveryMiddleware(s.logger),
		middleware.LoggingMiddleware(s.logger),
		middleware.CORSMiddleware(),
	)

	// ----- Handlers + Router -----
	handlers := &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authSvc),
		CarHandler:       carHandler.NewCarHandler(carSvc),
		DriverHandler:    driverHandler.NewDriverHandler(driverSvc),
		RideHandler:      bookingHandler.NewBookingHandler(bookingSvc, bookingDomain.TypeRide),
		RentalHandler:    bookingHandler.NewBookingHandler(bookingSvc, bookingDomain.TypeRental),
		PaymentHandler:   paymentHandler.NewPaymentHandler(paymentSvc),
		DashboardHandler: dashboardHandler.NewDashboardHandler(dashboardSvc),
		AuthMiddleware:   authMiddleware,
		Limiter:          limiter,
	}
	SetupRouter(s.engine, s.logger, handlers)

	s.logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown stops the reconciler and closes storage connections.
func (s *Server) Shutdown(ctx context.Context) {
	if s.reconciler != nil {
		s.reconciler.Stop()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
	s.logger.Info("server stopped")
}
