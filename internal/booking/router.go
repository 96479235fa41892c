package booking

import (
	"github.com/gin-gonic/gin"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/middleware"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(string(constants.RoleUser), string(constants.RoleAdmin)))
	{
		// Draft lifecycle
		bookings.GET("/draft/:hotelId", controller.GetDraft)
		bookings.PUT("/draft/:hotelId/dates", controller.SetDates)
		bookings.PUT("/draft/:hotelId/rooms", controller.SetRooms)
		bookings.POST("/draft/:hotelId/submit", controller.Submit)

		// Availability for a date window
		bookings.GET("/availability", controller.AvailableRooms)

		// Booking views and cancellation
		bookings.GET("/me", controller.MyBookings)
		bookings.GET("/user/:id", controller.UserBookings)
		bookings.DELETE("/:id", controller.Cancel)
	}

	admin := rg.Group("/admin/bookings")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		admin.GET("", controller.AllBookings)
		admin.GET("/hotel/:hotelId", controller.HotelBookings)
		admin.POST("/:id/status", controller.UpdateStatus)
	}
}
