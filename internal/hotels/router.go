package hotels

import (
	"github.com/gin-gonic/gin"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/middleware"
)

// SetupHotelRoutes configures all hotel-related routes
func SetupHotelRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	public := rg.Group("/hotels")
	{
		public.GET("", controller.List)
		public.GET("/:id", controller.Detail)
		public.GET("/:id/reviews", controller.Reviews)
	}
	rg.GET("/destinations", controller.Destinations)

	authed := rg.Group("/hotels")
	authed.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(string(constants.RoleUser), string(constants.RoleAdmin)))
	{
		authed.POST("/:id/reviews", controller.SubmitReview)
	}

	admin := rg.Group("/admin/hotels")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Delete)
	}
}
