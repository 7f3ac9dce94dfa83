package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionTypeCredit, TransactionTypeDebit:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("'%s' is not a valid transaction type", s)
}

// Transaction is a single audit record of money moving. Exactly one of
// Wallet_id (wallet payments) or User_id (online payments) is set.
type Transaction struct {
	ID             primitive.ObjectID `bson:"_id" json:"-"`
	Transaction_id string             `bson:"transaction_id" json:"transaction_id"`
	Amount         decimal.Decimal    `bson:"amount" json:"amount"`
	Type           TransactionType    `bson:"type" json:"type"`
	Note           string             `bson:"note" json:"note"`
	Wallet_id      string             `bson:"wallet_id,omitempty" json:"wallet_id,omitempty"`
	User_id        string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Created_at     time.Time          `bson:"created_at" json:"created_at"`
	Updated_at     time.Time          `bson:"updated_at" json:"updated_at"`
}
