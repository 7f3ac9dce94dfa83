package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Meal struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	Meal_id     string             `bson:"meal_id" json:"meal_id"`
	Name        *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description *string            `bson:"description" json:"description"`
	Price       decimal.Decimal    `bson:"price" json:"price"`
	Kitchen_id  string             `bson:"kitchen_id" json:"kitchen_id"`
	Likes       int                `bson:"likes" json:"likes"`
	Liked_by    []string           `bson:"liked_by" json:"-"`
	Created_at  time.Time          `bson:"created_at" json:"created_at"`
	Updated_at  time.Time          `bson:"updated_at" json:"updated_at"`
}
