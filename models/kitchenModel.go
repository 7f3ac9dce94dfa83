package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Kitchen struct {
	ID           primitive.ObjectID `bson:"_id" json:"-"`
	Kitchen_id   string             `bson:"kitchen_id" json:"kitchen_id"`
	Name         *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Address      *string            `bson:"address" json:"address" validate:"required"`
	Phone_number *string            `bson:"phone_number" json:"phone_number" validate:"required"`
	Cuisine      *string            `bson:"cuisine" json:"cuisine"`
	Owner_id     string             `bson:"owner_id" json:"owner_id"`
	Created_at   time.Time          `bson:"created_at" json:"created_at"`
	Updated_at   time.Time          `bson:"updated_at" json:"updated_at"`
}
