package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusAwaitingPayment         OrderStatus = "AWAITING_PAYMENT"
	StatusAwaitingAcknowledgement OrderStatus = "AWAITING_ACKNOWLEDGEMENT"
	StatusPreparing               OrderStatus = "PREPARING"
	StatusInTransit               OrderStatus = "IN_TRANSIT"
	StatusDelivered               OrderStatus = "DELIVERED"
	StatusCancelled               OrderStatus = "CANCELLED"
)

// ParseOrderStatus rejects anything outside the closed status set so a bad
// stored value or payload surfaces as an error instead of a silent pass-through.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusAwaitingPayment, StatusAwaitingAcknowledgement, StatusPreparing,
		StatusInTransit, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("'%s' is not a valid order status", s)
}

type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "ONLINE"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodOnline, PaymentMethodWallet:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("'%s' is not a valid payment method", s)
}

type Order struct {
	ID                  primitive.ObjectID `bson:"_id" json:"-"`
	Order_id            string             `bson:"order_id" json:"order_id"`
	Status              OrderStatus        `bson:"status" json:"status"`
	Payment_method      PaymentMethod      `bson:"payment_method" json:"payment_method"`
	Delivery_fee        decimal.Decimal    `bson:"delivery_fee" json:"delivery_fee"`
	Service_fee         decimal.Decimal    `bson:"service_fee" json:"service_fee"`
	Sub_total           decimal.Decimal    `bson:"sub_total" json:"sub_total"`
	Total               decimal.Decimal    `bson:"total" json:"total"`
	Delivery_address    string             `bson:"delivery_address" json:"delivery_address"`
	Dispatch_rider_note string             `bson:"dispatch_rider_note" json:"dispatch_rider_note"`
	Items               []OrderItem        `bson:"items,omitempty" json:"items,omitempty"`
	Kitchen_id          string             `bson:"kitchen_id" json:"kitchen_id"`
	Owner_id            string             `bson:"owner_id" json:"owner_id"`
	Cart_id             string             `bson:"cart_id" json:"cart_id"`
	Created_at          time.Time          `bson:"created_at" json:"created_at"`
	Updated_at          time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderItem freezes a meal's price at order time. Meal price changes after
// checkout must never reach an existing order.
type OrderItem struct {
	ID            primitive.ObjectID `bson:"_id" json:"-"`
	Order_item_id string             `bson:"order_item_id" json:"order_item_id"`
	Status        OrderStatus        `bson:"status" json:"status"`
	Price         decimal.Decimal    `bson:"price" json:"price"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Meal_id       string             `bson:"meal_id" json:"meal_id"`
	Order_id      string             `bson:"order_id" json:"order_id"`
	Kitchen_id    string             `bson:"kitchen_id" json:"kitchen_id"`
	Created_at    time.Time          `bson:"created_at" json:"created_at"`
	Updated_at    time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderUpdate is one entry in the append-only status journal. Entries are
// never mutated or deleted; the order's status field is the latest entry.
type OrderUpdate struct {
	ID         primitive.ObjectID `bson:"_id" json:"-"`
	Status     OrderStatus        `bson:"status" json:"status"`
	Order_id   string             `bson:"order_id" json:"order_id"`
	Created_at time.Time          `bson:"created_at" json:"created_at"`
}
