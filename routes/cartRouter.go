package routes

import (
	controller "go-food-marketplace/controllers"

	"github.com/gin-gonic/gin"
)

func CartRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/carts/active", controller.GetActiveCart())
	incomingRoutes.PUT("/carts/items", controller.SetCartItem())
}
