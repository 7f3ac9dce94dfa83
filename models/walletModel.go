package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BankAccount is the payout destination attached to a wallet once the owner
// has been through bank verification.
type BankAccount struct {
	Bank_code      string `bson:"bank_code" json:"bank_code"`
	Account_number string `bson:"account_number" json:"account_number"`
}

type Wallet struct {
	ID           primitive.ObjectID `bson:"_id" json:"-"`
	Wallet_id    string             `bson:"wallet_id" json:"wallet_id"`
	Balance      decimal.Decimal    `bson:"balance" json:"balance"`
	Owner_id     string             `bson:"owner_id" json:"owner_id"`
	Bank_account *BankAccount       `bson:"bank_account,omitempty" json:"bank_account,omitempty"`
	Created_at   time.Time          `bson:"created_at" json:"created_at"`
	Updated_at   time.Time          `bson:"updated_at" json:"updated_at"`
}
