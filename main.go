package main

import (
	"context"
	"log"
	"os"
	"time"

	"go-food-marketplace/controllers"
	"go-food-marketplace/helpers"
	"go-food-marketplace/middleware"
	routes "go-food-marketplace/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	helpers.PaymentSecret.Set(os.Getenv("PAYSTACK_SECRET_KEY"))
	// The gateway key is rotated by rewriting the env file; the refresh task
	// is the only writer after startup.
	helpers.PaymentSecret.StartRefresh(30*time.Minute, func() (string, error) {
		env, err := godotenv.Read(".env")
		if err != nil {
			return "", err
		}
		return env["PAYSTACK_SECRET_KEY"], nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := controllers.EnsureIndexes(ctx); err != nil {
		log.Printf("error occurred while creating indexes: %v", err)
	}
	cancel()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:9000"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.UserRoutes(router)
	router.Use(middleware.Authentication())
	routes.AuthedUserRoutes(router)
	routes.KitchenRoutes(router)
	routes.MealRoutes(router)
	routes.CartRoutes(router)
	routes.OrderRoutes(router)
	routes.WalletRoutes(router)

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
