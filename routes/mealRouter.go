package routes

import (
	controller "go-food-marketplace/controllers"

	"github.com/gin-gonic/gin"
)

func MealRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/meals", controller.CreateMeal())
	incomingRoutes.GET("/meals", controller.GetMeals())
	incomingRoutes.GET("/meals/:meal_id", controller.GetMeal())
	incomingRoutes.PUT("/meals/:meal_id/like", controller.LikeMeal())
	incomingRoutes.PUT("/meals/:meal_id/unlike", controller.UnlikeMeal())
}
