package controllers

import (
	"context"
	"net/http"
	"time"

	"go-food-marketplace/database"
	"go-food-marketplace/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var cartCollection *mongo.Collection = database.OpenCollection(database.Client, "cart")

// activeCart returns the caller's open cart, creating one when none exists.
func activeCart(ctx context.Context, ownerID string) (*models.Cart, error) {
	var cart models.Cart
	err := cartCollection.FindOne(ctx, bson.M{"owner_id": ownerID, "status": models.CartStatusNotCheckedOut}).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	cart = models.Cart{
		ID:         primitive.NewObjectID(),
		Items:      []models.CartItem{},
		Status:     models.CartStatusNotCheckedOut,
		Owner_id:   ownerID,
		Created_at: now,
		Updated_at: now,
	}
	cart.Cart_id = cart.ID.Hex()
	if _, err := cartCollection.InsertOne(ctx, cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func GetActiveCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		cart, err := activeCart(ctx, c.GetString("uid"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

type SetCartItemRequest struct {
	Meal_id  string `json:"meal_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

// SetCartItem sets the quantity for one meal in the open cart; quantity 0
// removes the line.
func SetCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var payload SetCartItemRequest
		if err := c.BindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&payload); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		count, err := mealCollection.CountDocuments(ctx, bson.M{"meal_id": payload.Meal_id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal"})
			return
		}
		if count == 0 && payload.Quantity > 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}

		cart, err := activeCart(ctx, c.GetString("uid"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart"})
			return
		}

		now := time.Now().UTC().Truncate(time.Second)
		_, err = database.WithTransaction(ctx, database.Client, func(ctx context.Context) (interface{}, error) {
			if _, err := cartCollection.UpdateOne(ctx,
				bson.M{"cart_id": cart.Cart_id, "status": models.CartStatusNotCheckedOut},
				bson.M{
					"$pull": bson.M{"items": bson.M{"meal_id": payload.Meal_id}},
					"$set":  bson.M{"updated_at": now},
				},
			); err != nil {
				return nil, err
			}
			if payload.Quantity > 0 {
				if _, err := cartCollection.UpdateOne(ctx,
					bson.M{"cart_id": cart.Cart_id, "status": models.CartStatusNotCheckedOut},
					bson.M{"$push": bson.M{"items": models.CartItem{Meal_id: payload.Meal_id, Quantity: payload.Quantity}}},
				); err != nil {
					return nil, err
				}
			}
			return nil, nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}

		var updated models.Cart
		if err := cartCollection.FindOne(ctx, bson.M{"cart_id": cart.Cart_id}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
