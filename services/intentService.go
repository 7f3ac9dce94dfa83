package services

import (
	"context"
	"log"
	"time"

	"go-food-marketplace/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IntentService persists payment intents for the online path. The collection
// carries a unique index on order_id, so the upsert in Reserve is the
// serialization point for concurrent online payment attempts on one order.
type IntentService struct {
	Intents *mongo.Collection
}

// EnsureIndexes creates the unique order_id index. Called once at startup.
func (s *IntentService) EnsureIndexes(ctx context.Context) error {
	_, err := s.Intents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Reserve returns the intent for the order, creating a PENDING one if none
// exists. A FAILED intent is reopened; a CONFIRMED one is returned as-is so
// the caller can detect the already-paid case.
func (s *IntentService) Reserve(ctx context.Context, orderID string, payerID string, amount decimal.Decimal) (*models.PaymentIntent, error) {
	now := time.Now().UTC().Truncate(time.Second)
	id := primitive.NewObjectID()

	var intent models.PaymentIntent
	err := s.Intents.FindOneAndUpdate(ctx,
		bson.M{"order_id": orderID},
		bson.M{
			"$setOnInsert": bson.M{
				"_id":        id,
				"intent_id":  id.Hex(),
				"order_id":   orderID,
				"payer_id":   payerID,
				"amount":     amount,
				"created_at": now,
			},
			"$set": bson.M{"updated_at": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&intent)
	if err != nil {
		log.Printf("error occurred while reserving payment intent for order %s: %v", orderID, err)
		return nil, err
	}

	if intent.Status == "" || intent.Status == models.PaymentIntentFailed {
		update := bson.M{"$set": bson.M{"status": models.PaymentIntentPending, "updated_at": now}}
		if err := s.Intents.FindOneAndUpdate(ctx,
			bson.M{"intent_id": intent.Intent_id},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&intent); err != nil {
			log.Printf("error occurred while opening payment intent %s: %v", intent.Intent_id, err)
			return nil, err
		}
	}
	return &intent, nil
}

// Attach stores the gateway's reference and hosted payment link on the intent.
func (s *IntentService) Attach(ctx context.Context, intentID string, reference string, authorizationURL string) error {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := s.Intents.UpdateOne(ctx,
		bson.M{"intent_id": intentID},
		bson.M{"$set": bson.M{"reference": reference, "authorization_url": authorizationURL, "updated_at": now}},
	)
	if err != nil {
		log.Printf("error occurred while attaching reference to intent %s: %v", intentID, err)
	}
	return err
}

// Fail marks the intent FAILED after a gateway error so a later attempt can
// reopen it.
func (s *IntentService) Fail(ctx context.Context, intentID string) error {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := s.Intents.UpdateOne(ctx,
		bson.M{"intent_id": intentID},
		bson.M{"$set": bson.M{"status": models.PaymentIntentFailed, "updated_at": now}},
	)
	if err != nil {
		log.Printf("error occurred while failing intent %s: %v", intentID, err)
	}
	return err
}

// Confirm flips a PENDING intent with the given gateway reference to
// CONFIRMED. The status precondition makes confirmation idempotent: a second
// webhook delivery matches nothing and gets ErrNotFound.
func (s *IntentService) Confirm(ctx context.Context, reference string) (*models.PaymentIntent, error) {
	now := time.Now().UTC().Truncate(time.Second)
	var intent models.PaymentIntent
	err := s.Intents.FindOneAndUpdate(ctx,
		bson.M{"reference": reference, "status": models.PaymentIntentPending},
		bson.M{"$set": bson.M{"status": models.PaymentIntentConfirmed, "updated_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&intent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		log.Printf("error occurred while confirming intent with reference %s: %v", reference, err)
		return nil, err
	}
	return &intent, nil
}
