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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var mealCollection *mongo.Collection = database.OpenCollection(database.Client, "meal")

func CreateMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var meal models.Meal
		if err := c.BindJSON(&meal); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&meal); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		if meal.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
			return
		}

		kitchen, err := KitchenByOwner(ctx, c.GetString("uid"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"error": "user does not own a kitchen"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch kitchen"})
			return
		}

		now := time.Now().UTC().Truncate(time.Second)
		meal.ID = primitive.NewObjectID()
		meal.Meal_id = meal.ID.Hex()
		meal.Kitchen_id = kitchen.Kitchen_id
		meal.Likes = 0
		meal.Liked_by = []string{}
		meal.Created_at = now
		meal.Updated_at = now

		if _, err := mealCollection.InsertOne(ctx, meal); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "meal was not created"})
			return
		}
		c.JSON(http.StatusCreated, meal)
	}
}

func GetMeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := bson.M{}
		if kitchenId := c.Query("kitchen_id"); kitchenId != "" {
			filter["kitchen_id"] = kitchenId
		}

		result, err := mealCollection.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing meals"})
			return
		}
		allMeals := []models.Meal{}
		if err := result.All(ctx, &allMeals); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while decoding meals"})
			return
		}
		c.JSON(http.StatusOK, allMeals)
	}
}

func GetMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var meal models.Meal
		err := mealCollection.FindOne(ctx, bson.M{"meal_id": c.Param("meal_id")}).Decode(&meal)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal"})
			return
		}
		c.JSON(http.StatusOK, meal)
	}
}

// LikeMeal adds the caller to the meal's liked_by set and bumps the counter.
// The filter excludes meals the caller already liked, so the whole
// check-then-act runs as one conditional update and a repeat like is a no-op.
func LikeMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		res, err := mealCollection.UpdateOne(ctx,
			bson.M{"meal_id": c.Param("meal_id"), "liked_by": bson.M{"$ne": uid}},
			bson.M{
				"$addToSet": bson.M{"liked_by": uid},
				"$inc":      bson.M{"likes": 1},
				"$set":      bson.M{"updated_at": time.Now().UTC().Truncate(time.Second)},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to like meal"})
			return
		}
		if res.MatchedCount == 0 {
			count, err := mealCollection.CountDocuments(ctx, bson.M{"meal_id": c.Param("meal_id")})
			if err != nil || count == 0 {
				c.JSON(http.StatusNotFound, gin.H{"message": "meal not found"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "meal liked successfully"})
	}
}

func UnlikeMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		res, err := mealCollection.UpdateOne(ctx,
			bson.M{"meal_id": c.Param("meal_id"), "liked_by": uid},
			bson.M{
				"$pull": bson.M{"liked_by": uid},
				"$inc":  bson.M{"likes": -1},
				"$set":  bson.M{"updated_at": time.Now().UTC().Truncate(time.Second)},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to unlike meal"})
			return
		}
		if res.MatchedCount == 0 {
			count, err := mealCollection.CountDocuments(ctx, bson.M{"meal_id": c.Param("meal_id")})
			if err != nil || count == 0 {
				c.JSON(http.StatusNotFound, gin.H{"message": "meal not found"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "meal unliked successfully"})
	}
}
