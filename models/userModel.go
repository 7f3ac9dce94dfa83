package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("'%s' is not a valid user role", s)
}

type User struct {
	ID            primitive.ObjectID `bson:"_id" json:"-"`
	User_id       string             `bson:"user_id" json:"user_id"`
	First_name    *string            `bson:"first_name" json:"first_name" validate:"required,min=2,max=100"`
	Last_name     *string            `bson:"last_name" json:"last_name" validate:"required,min=2,max=100"`
	Password      *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Email         *string            `bson:"email" json:"email" validate:"email,required"`
	Phone_number  *string            `bson:"phone_number" json:"phone_number" validate:"required"`
	User_role     Role               `bson:"user_role" json:"user_role"`
	Has_kitchen   bool               `bson:"has_kitchen" json:"has_kitchen"`
	Token         *string            `bson:"token" json:"token,omitempty"`
	Refresh_token *string            `bson:"refresh_token" json:"refresh_token,omitempty"`
	Created_at    time.Time          `bson:"created_at" json:"created_at"`
	Updated_at    time.Time          `bson:"updated_at" json:"updated_at"`
}
