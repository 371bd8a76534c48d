// internal/app/router.go
package app

import (
	"fleetride-service/internal/domain/user"
	authHandler "fleetride-service/internal/handlers/auth"
	bookingHandler "fleetride-service/internal/handlers/booking"
	carHandler "fleetride-service/internal/handlers/car"
	dashboardHandler "fleetride-service/internal/handlers/dashboard"
	driverHandler "fleetride-service/internal/handlers/driver"
	paymentHandler "fleetride-service/internal/handlers/payment"
	"fleetride-service/internal/middleware"
	"fleetride-service/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	CarHandler       *carHandler.CarHandler
	DriverHandler    *driverHandler.DriverHandler
	RideHandler      *bookingHandler.BookingHandler
	RentalHandler    *bookingHandler.BookingHandler
	PaymentHandler   *paymentHandler.PaymentHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
	Limiter          *ratelimit.Limiter
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	auth := h.AuthMiddleware.Auth()
	adminOnly := h.AuthMiddleware.RequireRole(user.RoleAdmin)
	adminOrDriver := h.AuthMiddleware.RequireRole(user.RoleAdmin, user.RoleDriver)

	// ==================== Users ====================
	users := api.Group("/users")
	{
		users.POST("/register", h.AuthHandler.Register)
		users.POST("/login", h.AuthHandler.Login)

		usersAuth := users.Group("")
		usersAuth.Use(auth)
		{
			usersAuth.GET("/:id", h.AuthHandler.Profile)
			usersAuth.PUT("/:id", h.AuthHandler.UpdateProfile)
			usersAuth.DELETE("/:id", h.AuthHandler.Deactivate)
		}
	}

	// ==================== Cars ====================
	cars := api.Group("/cars")
	cars.Use(auth)
	{
		cars.GET("", h.CarHandler.List)
		cars.GET("/:id", h.CarHandler.Get)
		cars.POST("", adminOnly, h.CarHandler.Create)
		cars.PUT("/:id", adminOnly, h.CarHandler.Update)
		cars.DELETE("/:id", adminOnly, h.CarHandler.Delete)
	}

	// ==================== Drivers ====================
	drivers := api.Group("/drivers")
	drivers.Use(auth)
	{
		drivers.GET("", h.DriverHandler.List)
		drivers.GET("/:id", h.DriverHandler.Get)
		drivers.POST("", adminOnly, h.DriverHandler.Create)
		drivers.PUT("/:id", adminOnly, h.DriverHandler.Update)
		drivers.DELETE("/:id", adminOnly, h.DriverHandler.Delete)
	}

	bookingLimit := middleware.RateLimit(h.Limiter, "booking", logger)

	// ==================== Rides ====================
	rides := api.Group("/rides")
	rides.Use(auth)
	{
		rides.POST("", bookingLimit, h.RideHandler.Create)
		rides.GET("/:id", h.RideHandler.Get)
		rides.GET("/user/:userId", h.RideHandler.ListByUser)
		rides.PUT("/:id/status", adminOrDriver, h.RideHandler.UpdateStatus)
		rides.POST("/:id/cancel", h.RideHandler.Cancel)
	}

	// ==================== Rentals ====================
	rentals := api.Group("/rentals")
	rentals.Use(auth)
	{
		rentals.POST("", bookingLimit, h.RentalHandler.Create)
		rentals.GET("/:id", h.RentalHandler.Get)
		rentals.GET("/user/:userId", h.RentalHandler.ListByUser)
		rentals.PUT("/:id/status", adminOnly, h.RentalHandler.UpdateStatus)
		rentals.POST("/:id/cancel", h.RentalHandler.Cancel)
	}

	// ==================== Payments ====================
	payments := api.Group("/payments")
	payments.Use(auth)
	{
		payments.POST("", h.PaymentHandler.Create)
		payments.GET("/:id", h.PaymentHandler.Get)
		payments.GET("/user/:userId", h.PaymentHandler.ListByUser)
		payments.PUT("/:id/status", adminOnly, h.PaymentHandler.UpdateStatus)
	}

	// ==================== Dashboard ====================
	dashboard := api.Group("/dashboard")
	dashboard.Use(auth, adminOnly)
	{
		dashboard.GET("/overview", h.DashboardHandler.Overview)
	}
}
