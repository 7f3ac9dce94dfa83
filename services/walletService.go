package services

import (
	"context"
	"log"
	"time"

	"go-food-marketplace/database"
	"go-food-marketplace/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WalletService owns wallet balances. Every balance mutation writes a
// matching transaction record in the same database transaction; the two
// writes never happen independently.
type WalletService struct {
	Wallets      *mongo.Collection
	Transactions *mongo.Collection
	Client       *mongo.Client
}

func (s *WalletService) Create(ctx context.Context, ownerID string) (*models.Wallet, error) {
	now := time.Now().UTC().Truncate(time.Second)
	wallet := models.Wallet{
		ID:         primitive.NewObjectID(),
		Balance:    decimal.Zero,
		Owner_id:   ownerID,
		Created_at: now,
		Updated_at: now,
	}
	wallet.Wallet_id = wallet.ID.Hex()
	if _, err := s.Wallets.InsertOne(ctx, wallet); err != nil {
		log.Printf("error occurred while creating wallet for user %s: %v", ownerID, err)
		return nil, err
	}
	return &wallet, nil
}

func (s *WalletService) FindByOwnerID(ctx context.Context, ownerID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.Wallets.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&wallet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		log.Printf("error occurred while fetching wallet for user %s: %v", ownerID, err)
		return nil, err
	}
	return &wallet, nil
}

func (s *WalletService) FindByID(ctx context.Context, walletID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.Wallets.FindOne(ctx, bson.M{"wallet_id": walletID}).Decode(&wallet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		log.Printf("error occurred while fetching wallet %s: %v", walletID, err)
		return nil, err
	}
	return &wallet, nil
}

// Debit takes amount off the wallet and records a DEBIT transaction. The
// balance update is conditioned on balance >= amount, so a debit that would
// go negative matches nothing and writes nothing, and two concurrent debits
// cannot both spend the same funds.
func (s *WalletService) Debit(ctx context.Context, walletID string, amount decimal.Decimal, note string) error {
	return s.adjust(ctx, walletID, amount.Neg(), models.TransactionTypeDebit, note)
}

// Credit adds amount to the wallet and records a CREDIT transaction.
func (s *WalletService) Credit(ctx context.Context, walletID string, amount decimal.Decimal, note string) error {
	return s.adjust(ctx, walletID, amount, models.TransactionTypeCredit, note)
}

func (s *WalletService) adjust(ctx context.Context, walletID string, delta decimal.Decimal, txType models.TransactionType, note string) error {
	now := time.Now().UTC().Truncate(time.Second)

	filter := bson.M{"wallet_id": walletID}
	if delta.IsNegative() {
		filter["balance"] = bson.M{"$gte": delta.Neg()}
	}

	_, err := database.WithTransaction(ctx, s.Client, func(ctx context.Context) (interface{}, error) {
		res, err := s.Wallets.UpdateOne(ctx, filter,
			bson.M{"$inc": bson.M{"balance": delta}, "$set": bson.M{"updated_at": now}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			// Either the wallet is missing or the precondition failed.
			count, err := s.Wallets.CountDocuments(ctx, bson.M{"wallet_id": walletID})
			if err != nil {
				return nil, err
			}
			if count == 0 {
				return nil, ErrNotFound
			}
			return nil, ErrInsufficientBalance
		}

		record := models.Transaction{
			ID:         primitive.NewObjectID(),
			Amount:     delta.Abs(),
			Type:       txType,
			Note:       note,
			Wallet_id:  walletID,
			Created_at: now,
			Updated_at: now,
		}
		record.Transaction_id = record.ID.Hex()
		if _, err := s.Transactions.InsertOne(ctx, record); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if err == ErrNotFound || err == ErrInsufficientBalance {
			return err
		}
		log.Printf("error occurred while adjusting wallet %s by %s: %v", walletID, delta, err)
		return err
	}
	return nil
}
