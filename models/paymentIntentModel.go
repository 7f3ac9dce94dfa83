package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentIntentStatus string

const (
	PaymentIntentPending   PaymentIntentStatus = "PENDING"
	PaymentIntentConfirmed PaymentIntentStatus = "CONFIRMED"
	PaymentIntentFailed    PaymentIntentStatus = "FAILED"
)

func ParsePaymentIntentStatus(s string) (PaymentIntentStatus, error) {
	switch PaymentIntentStatus(s) {
	case PaymentIntentPending, PaymentIntentConfirmed, PaymentIntentFailed:
		return PaymentIntentStatus(s), nil
	}
	return "", fmt.Errorf("'%s' is not a valid payment intent status", s)
}

// PaymentIntent correlates an order with the gateway's payment reference for
// the online path, where confirmation arrives out-of-band. At most one intent
// exists per order (the orders collection is keyed by order_id with a unique
// index on payment_intents.order_id).
type PaymentIntent struct {
	ID                primitive.ObjectID  `bson:"_id" json:"-"`
	Intent_id         string              `bson:"intent_id" json:"intent_id"`
	Order_id          string              `bson:"order_id" json:"order_id"`
	Payer_id          string              `bson:"payer_id" json:"payer_id"`
	Reference         string              `bson:"reference,omitempty" json:"reference,omitempty"`
	Authorization_url string              `bson:"authorization_url,omitempty" json:"authorization_url,omitempty"`
	Amount            decimal.Decimal     `bson:"amount" json:"amount"`
	Status            PaymentIntentStatus `bson:"status" json:"status"`
	Created_at        time.Time           `bson:"created_at" json:"created_at"`
	Updated_at        time.Time           `bson:"updated_at" json:"updated_at"`
}
