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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusNotifier receives committed status changes, e.g. the websocket
// tracking hub. Notification happens after the transaction commits.
type StatusNotifier interface {
	NotifyStatusChange(orderID string, status models.OrderStatus)
}

type OrderService struct {
	Orders       *mongo.Collection
	OrderItems   *mongo.Collection
	OrderUpdates *mongo.Collection
	Carts        *mongo.Collection
	Meals        *mongo.Collection
	Client       *mongo.Client
	Notifier     StatusNotifier
}

type CreateOrderPayload struct {
	Payment_method      models.PaymentMethod
	Delivery_address    string
	Dispatch_rider_note string
}

// PriceCartItems resolves every cart line against the current meal catalogue
// and freezes prices into order items. A line whose meal no longer exists
// fails the whole order: silently dropping it would charge the customer for a
// different order than the cart they reviewed. Carts spanning more than one
// kitchen are rejected so the order has a single accountable kitchen.
func PriceCartItems(cartItems []models.CartItem, mealsByID map[string]models.Meal) ([]models.OrderItem, decimal.Decimal, error) {
	if len(cartItems) == 0 {
		return nil, decimal.Zero, ErrEmptyCart
	}

	subTotal := decimal.Zero
	kitchenID := ""
	items := make([]models.OrderItem, 0, len(cartItems))
	for _, line := range cartItems {
		meal, ok := mealsByID[line.Meal_id]
		if !ok {
			return nil, decimal.Zero, ErrMealUnavailable
		}
		if kitchenID == "" {
			kitchenID = meal.Kitchen_id
		} else if kitchenID != meal.Kitchen_id {
			return nil, decimal.Zero, ErrMultipleKitchens
		}

		items = append(items, models.OrderItem{
			Status:     models.StatusAwaitingPayment,
			Price:      meal.Price,
			Quantity:   line.Quantity,
			Meal_id:    meal.Meal_id,
			Kitchen_id: meal.Kitchen_id,
		})
		subTotal = subTotal.Add(meal.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return items, subTotal, nil
}

// CreateFromCart freezes the cart into a priced order. The order, its items,
// the initial journal entry and the cart's CHECKED_OUT flip are one
// transaction: either everything persists or nothing does.
func (s *OrderService) CreateFromCart(ctx context.Context, cart models.Cart, payload CreateOrderPayload) (*models.Order, error) {
	if cart.Status == models.CartStatusCheckedOut {
		return nil, ErrCartCheckedOut
	}

	mealIDs := make([]string, 0, len(cart.Items))
	for _, line := range cart.Items {
		mealIDs = append(mealIDs, line.Meal_id)
	}
	cursor, err := s.Meals.Find(ctx, bson.M{"meal_id": bson.M{"$in": mealIDs}})
	if err != nil {
		log.Printf("error occurred while fetching meals for cart %s: %v", cart.Cart_id, err)
		return nil, err
	}
	var meals []models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		log.Printf("error occurred while decoding meals for cart %s: %v", cart.Cart_id, err)
		return nil, err
	}
	mealsByID := make(map[string]models.Meal, len(meals))
	for _, meal := range meals {
		mealsByID[meal.Meal_id] = meal
	}

	items, subTotal, err := PriceCartItems(cart.Items, mealsByID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	order := models.Order{
		ID:                  primitive.NewObjectID(),
		Status:              models.StatusAwaitingPayment,
		Payment_method:      payload.Payment_method,
		Delivery_fee:        decimal.Zero, // fee computation is out of scope for now
		Service_fee:         decimal.Zero,
		Sub_total:           subTotal,
		Total:               subTotal,
		Delivery_address:    payload.Delivery_address,
		Dispatch_rider_note: payload.Dispatch_rider_note,
		Kitchen_id:          items[0].Kitchen_id,
		Owner_id:            cart.Owner_id,
		Cart_id:             cart.Cart_id,
		Created_at:          now,
		Updated_at:          now,
	}
	order.Order_id = order.ID.Hex()

	for i := range items {
		items[i].ID = primitive.NewObjectID()
		items[i].Order_item_id = items[i].ID.Hex()
		items[i].Order_id = order.Order_id
		items[i].Created_at = now
		items[i].Updated_at = now
	}

	_, err = database.WithTransaction(ctx, s.Client, func(ctx context.Context) (interface{}, error) {
		// Flipping the cart first, conditioned on it still being open,
		// serializes concurrent checkouts of the same cart.
		res, err := s.Carts.UpdateOne(ctx,
			bson.M{"cart_id": cart.Cart_id, "status": models.CartStatusNotCheckedOut},
			bson.M{"$set": bson.M{"status": models.CartStatusCheckedOut, "updated_at": now}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrCartCheckedOut
		}

		if _, err := s.Orders.InsertOne(ctx, order); err != nil {
			return nil, err
		}

		docs := make([]interface{}, 0, len(items))
		for _, item := range items {
			docs = append(docs, item)
		}
		if _, err := s.OrderItems.InsertMany(ctx, docs); err != nil {
			return nil, err
		}

		journal := models.OrderUpdate{
			ID:         primitive.NewObjectID(),
			Status:     models.StatusAwaitingPayment,
			Order_id:   order.Order_id,
			Created_at: now,
		}
		if _, err := s.OrderUpdates.InsertOne(ctx, journal); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if err == ErrCartCheckedOut {
			return nil, err
		}
		log.Printf("error occurred while creating order from cart %s: %v", cart.Cart_id, err)
		return nil, err
	}

	order.Items = items
	return &order, nil
}

// FindByID returns the order with its items attached. ownerID narrows the
// lookup for non-admin callers; pass "" to skip the ownership filter.
func (s *OrderService) FindByID(ctx context.Context, orderID string, ownerID string) (*models.Order, error) {
	filter := bson.M{"order_id": orderID}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	var order models.Order
	if err := s.Orders.FindOne(ctx, filter).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		log.Printf("error occurred while fetching order %s: %v", orderID, err)
		return nil, err
	}

	cursor, err := s.OrderItems.Find(ctx, bson.M{"order_id": orderID})
	if err != nil {
		log.Printf("error occurred while fetching items for order %s: %v", orderID, err)
		return nil, err
	}
	if err := cursor.All(ctx, &order.Items); err != nil {
		log.Printf("error occurred while decoding items for order %s: %v", orderID, err)
		return nil, err
	}
	return &order, nil
}

type OrderFilters struct {
	Owner_id   string
	Status     models.OrderStatus
	Kitchen_id string
}

func (s *OrderService) FindMany(ctx context.Context, filters OrderFilters, page int, perPage int) ([]models.Order, error) {
	filter := bson.M{}
	if filters.Owner_id != "" {
		filter["owner_id"] = filters.Owner_id
	}
	if filters.Status != "" {
		filter["status"] = filters.Status
	}
	if filters.Kitchen_id != "" {
		filter["kitchen_id"] = filters.Kitchen_id
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := s.Orders.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("error occurred while fetching orders: %v", err)
		return nil, err
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Printf("error occurred while decoding orders: %v", err)
		return nil, err
	}
	return orders, nil
}

// TransitionStatus moves the order from one status to another, appending a
// journal entry and updating the projection in the same transaction. The
// update is conditioned on the order still being in from, so two concurrent
// callers cannot both win the same edge.
func (s *OrderService) TransitionStatus(ctx context.Context, orderID string, from models.OrderStatus, to models.OrderStatus) error {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := database.WithTransaction(ctx, s.Client, func(ctx context.Context) (interface{}, error) {
		res, err := s.Orders.UpdateOne(ctx,
			bson.M{"order_id": orderID, "status": from},
			bson.M{"$set": bson.M{"status": to, "updated_at": now}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrInvalidTransition
		}

		journal := models.OrderUpdate{
			ID:         primitive.NewObjectID(),
			Status:     to,
			Order_id:   orderID,
			Created_at: now,
		}
		if _, err := s.OrderUpdates.InsertOne(ctx, journal); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if err == ErrInvalidTransition {
			return err
		}
		log.Printf("error occurred while transitioning order %s from %s to %s: %v", orderID, from, to, err)
		return err
	}

	if s.Notifier != nil {
		s.Notifier.NotifyStatusChange(orderID, to)
	}
	return nil
}
