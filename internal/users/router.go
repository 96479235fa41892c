package users

import (
	"github.com/gin-gonic/gin"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/middleware"
)

// SetupUserRoutes configures authentication and account routes
func SetupUserRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", controller.Login)
		auth.POST("/register", controller.Register)
	}

	me := rg.Group("/users/me")
	me.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(string(constants.RoleUser), string(constants.RoleAdmin)))
	{
		me.GET("", controller.Profile)
		me.PUT("", controller.UpdateProfile)
		me.GET("/bookmarks", controller.Bookmarks)
		me.GET("/bookmarks/hotels", controller.BookmarkedHotels)
		me.POST("/bookmarks/:hotelId", controller.AddBookmark)
		me.DELETE("/bookmarks/:hotelId", controller.RemoveBookmark)
	}

	admin := rg.Group("/admin/users")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		admin.GET("", controller.AllUsers)
		admin.DELETE("/:id", controller.DeleteUser)
	}
}
