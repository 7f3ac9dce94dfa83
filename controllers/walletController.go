package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-food-marketplace/database"
	"go-food-marketplace/models"
	"go-food-marketplace/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

var walletCollection *mongo.Collection = database.OpenCollection(database.Client, "wallet")
var transactionCollection *mongo.Collection = database.OpenCollection(database.Client, "transaction")

func GetWalletByProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		wallet, err := walletService.FindByOwnerID(ctx, c.GetString("uid"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch wallet"})
			return
		}
		c.JSON(http.StatusOK, wallet)
	}
}

func GetWallet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		wallet, err := walletService.FindByID(ctx, c.Param("wallet_id"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch wallet"})
			return
		}
		if c.GetString("user_role") != string(models.RoleAdmin) && wallet.Owner_id != c.GetString("uid") {
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot access another user's wallet"})
			return
		}
		c.JSON(http.StatusOK, wallet)
	}
}
