package routes

import (
	controller "go-food-marketplace/controllers"

	"github.com/gin-gonic/gin"
)

func WalletRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/wallets/profile", controller.GetWalletByProfile())
	incomingRoutes.GET("/wallets/:wallet_id", controller.GetWallet())
}
