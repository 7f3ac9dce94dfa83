package routes

import (
	controller "go-food-marketplace/controllers"

	"github.com/gin-gonic/gin"
)

func KitchenRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/kitchens", controller.CreateKitchen())
	incomingRoutes.GET("/kitchens/profile", controller.GetKitchenByProfile())
	incomingRoutes.GET("/kitchens/:kitchen_id", controller.GetKitchen())
}
