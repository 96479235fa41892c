package notifications

import (
	"github.com/gin-gonic/gin"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/middleware"
)

// SetupNotificationRoutes configures notification routes
func SetupNotificationRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	group := rg.Group("/notifications")
	group.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(string(constants.RoleUser), string(constants.RoleAdmin)))
	{
		group.GET("", controller.List)
		group.PUT("/:id/read", controller.MarkRead)
	}
}
