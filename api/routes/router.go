// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"staymate/internal/booking"
	"staymate/internal/events"
	"staymate/internal/hotels"
	"staymate/internal/notifications"
	"staymate/internal/payments"
	"staymate/internal/shared/config"
	"staymate/internal/shared/upstream"
	"staymate/internal/users"
	"staymate/pkg/cache"
	"staymate/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	clients   *upstream.Clients
	cache     cache.Service
	publisher events.Publisher
	log       *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, clients *upstream.Clients, cacheService cache.Service, publisher events.Publisher, log *logger.Logger) *Router {
	return &Router{
		config:    cfg,
		clients:   clients,
		cache:     cacheService,
		publisher: publisher,
		log:       log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupUserRoutes(api)
		r.setupHotelRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupNotificationRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.cache.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "staymate-gateway",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "staymate-gateway",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupUserRoutes configures authentication and account routes
func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userService := users.NewService(r.clients, r.config, r.log)
	userController := users.NewController(userService)

	users.SetupUserRoutes(rg, r.config, userController)
}

// setupHotelRoutes configures hotel browse and admin routes
func (r *Router) setupHotelRoutes(rg *gin.RouterGroup) {
	hotelService := hotels.NewService(r.clients, r.cache, r.config, r.log)
	hotelController := hotels.NewController(hotelService)

	hotels.SetupHotelRoutes(rg, r.config, hotelController)
}

// setupBookingRoutes configures booking draft and booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingService := booking.NewService(r.clients, r.cache, r.publisher, r.config, r.log)
	bookingController := booking.NewController(bookingService)

	booking.SetupBookingRoutes(rg, r.config, bookingController)
}

// setupPaymentRoutes configures payment routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentService := payments.NewService(r.clients, r.cache, r.publisher, r.log)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, r.config, paymentController)
}

// setupNotificationRoutes configures notification routes
func (r *Router) setupNotificationRoutes(rg *gin.RouterGroup) {
	notificationService := notifications.NewService(r.clients, r.cache, r.config, r.log)
	notificationController := notifications.NewController(notificationService)

	notifications.SetupNotificationRoutes(rg, r.config, notificationController)
}
