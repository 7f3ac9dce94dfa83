package controllers

import (
	"context"
	"net/http"
	"time"

	"go-food-marketplace/database"
	"go-food-marketplace/models"
	"go-food-marketplace/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var kitchenCollection *mongo.Collection = database.OpenCollection(database.Client, "kitchen")

// KitchenByOwner resolves the kitchen a user owns; status-update authorization
// depends on it.
func KitchenByOwner(ctx context.Context, ownerID string) (*models.Kitchen, error) {
	var kitchen models.Kitchen
	err := kitchenCollection.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&kitchen)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &kitchen, nil
}

func CreateKitchen() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var kitchen models.Kitchen
		if err := c.BindJSON(&kitchen); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&kitchen); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		count, err := kitchenCollection.CountDocuments(ctx, bson.M{"owner_id": c.GetString("uid")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking for an existing kitchen"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already owns a kitchen"})
			return
		}

		now := time.Now().UTC().Truncate(time.Second)
		kitchen.ID = primitive.NewObjectID()
		kitchen.Kitchen_id = kitchen.ID.Hex()
		kitchen.Owner_id = c.GetString("uid")
		kitchen.Created_at = now
		kitchen.Updated_at = now

		if _, err := kitchenCollection.InsertOne(ctx, kitchen); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "kitchen was not created"})
			return
		}

		_, err = userCollection.UpdateOne(ctx,
			bson.M{"user_id": kitchen.Owner_id},
			bson.M{"$set": bson.M{"has_kitchen": true, "updated_at": now}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user profile"})
			return
		}
		c.JSON(http.StatusCreated, kitchen)
	}
}

func GetKitchenByProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		kitchen, err := KitchenByOwner(ctx, c.GetString("uid"))
		if err != nil {
			if err == services.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "kitchen not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch kitchen"})
			return
		}
		c.JSON(http.StatusOK, kitchen)
	}
}

func GetKitchen() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var kitchen models.Kitchen
		err := kitchenCollection.FindOne(ctx, bson.M{"kitchen_id": c.Param("kitchen_id")}).Decode(&kitchen)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "kitchen not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch kitchen"})
			return
		}
		c.JSON(http.StatusOK, kitchen)
	}
}
