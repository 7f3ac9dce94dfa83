package routes

import (
	controller "go-food-marketplace/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/users/signup", controller.SignUp())
	incomingRoutes.POST("/users/login", controller.Login())
}

func AuthedUserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/users/:user_id", controller.GetUser())
}
