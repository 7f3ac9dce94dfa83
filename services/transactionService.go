package services

import (
	"context"
	"log"
	"time"

	"go-food-marketplace/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionService records online transactions, which are scoped to the
// paying user rather than a wallet. Wallet-scoped records are written by
// WalletService together with the balance mutation.
type TransactionService struct {
	Transactions *mongo.Collection
}

func (s *TransactionService) CreateForUser(ctx context.Context, userID string, amount decimal.Decimal, txType models.TransactionType, note string) error {
	now := time.Now().UTC().Truncate(time.Second)
	record := models.Transaction{
		ID:         primitive.NewObjectID(),
		Amount:     amount,
		Type:       txType,
		Note:       note,
		User_id:    userID,
		Created_at: now,
		Updated_at: now,
	}
	record.Transaction_id = record.ID.Hex()
	if _, err := s.Transactions.InsertOne(ctx, record); err != nil {
		log.Printf("error occurred while recording transaction for user %s: %v", userID, err)
		return err
	}
	return nil
}
