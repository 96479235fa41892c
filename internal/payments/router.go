package payments

import (
	"github.com/gin-gonic/gin"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/middleware"
)

// SetupPaymentRoutes configures all payment-related routes
func SetupPaymentRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	pay := rg.Group("/payments")
	pay.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(string(constants.RoleUser), string(constants.RoleAdmin)))
	{
		pay.GET("/me", controller.MyPayments)
		pay.GET("/booking/:bookingId", controller.BookingState)
		pay.GET("/booking/:bookingId/methods", controller.MethodBreakdown)
		pay.POST("/booking/:bookingId", controller.Pay)
	}

	admin := rg.Group("/admin/payments")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		admin.GET("", controller.AdminPayments)
	}
}
