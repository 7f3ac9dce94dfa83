package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartStatus string

const (
	CartStatusCheckedOut    CartStatus = "CHECKED_OUT"
	CartStatusNotCheckedOut CartStatus = "NOT_CHECKED_OUT"
)

func ParseCartStatus(s string) (CartStatus, error) {
	switch CartStatus(s) {
	case CartStatusCheckedOut, CartStatusNotCheckedOut:
		return CartStatus(s), nil
	}
	return "", fmt.Errorf("'%s' is not a valid cart status", s)
}

type CartItem struct {
	Meal_id  string `bson:"meal_id" json:"meal_id" validate:"required"`
	Quantity int    `bson:"quantity" json:"quantity" validate:"required,min=1"`
}

type Cart struct {
	ID         primitive.ObjectID `bson:"_id" json:"-"`
	Cart_id    string             `bson:"cart_id" json:"cart_id"`
	Items      []CartItem         `bson:"items" json:"items"`
	Status     CartStatus         `bson:"status" json:"status"`
	Owner_id   string             `bson:"owner_id" json:"owner_id"`
	Created_at time.Time          `bson:"created_at" json:"created_at"`
	Updated_at time.Time          `bson:"updated_at" json:"updated_at"`
}
