package routes

import (
	"janawaaz-be/controllers"
	"janawaaz-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, ac *controllers.AuthController) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ac.RegisterUser)
		auth.POST("/login", ac.LoginUser)
		auth.GET("/me", middlewares.AuthMiddleware(), ac.GetMe)
	}
}
