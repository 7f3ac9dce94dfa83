package routes

import (
	controller "go-food-marketplace/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/orders", controller.GetOrders())
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder())
	incomingRoutes.POST("/orders", controller.CreateOrder())
	incomingRoutes.PUT("/orders/:order_id/status", controller.UpdateOrderStatus())
	incomingRoutes.POST("/orders/:order_id/pay", controller.PayForOrder())
	incomingRoutes.GET("/ws/orders", controller.HandleOrderTracking())
}
