package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-food-marketplace/database"
	"go-food-marketplace/helpers"
	"go-food-marketplace/models"
	"go-food-marketplace/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")
var orderItemCollection *mongo.Collection = database.OpenCollection(database.Client, "orderItem")
var orderUpdateCollection *mongo.Collection = database.OpenCollection(database.Client, "orderUpdate")
var paymentIntentCollection *mongo.Collection = database.OpenCollection(database.Client, "paymentIntent")

var orderService = &services.OrderService{
	Orders:       orderCollection,
	OrderItems:   orderItemCollection,
	OrderUpdates: orderUpdateCollection,
	Carts:        cartCollection,
	Meals:        mealCollection,
	Client:       database.Client,
	Notifier:     orderTracker,
}

var walletService = &services.WalletService{
	Wallets:      walletCollection,
	Transactions: transactionCollection,
	Client:       database.Client,
}

var transactionService = &services.TransactionService{
	Transactions: transactionCollection,
}

var intentService = &services.IntentService{
	Intents: paymentIntentCollection,
}

var paymentService = &services.PaymentService{
	Wallets:      walletService,
	Orders:       orderService,
	Transactions: transactionService,
	Intents:      intentService,
	Gateway:      services.NewPaystackClient(helpers.PaymentSecret.Get),
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "10"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 10
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		filters := services.OrderFilters{
			Kitchen_id: c.Query("kitchen_id"),
		}
		if status := c.Query("status"); status != "" {
			parsed, err := models.ParseOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filters.Status = parsed
		}
		// Admins see every order; everyone else only their own.
		if c.GetString("user_role") != string(models.RoleAdmin) {
			filters.Owner_id = c.GetString("uid")
		}

		orders, err := orderService.FindMany(ctx, filters, page, recordPerPage)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		ownerId := c.GetString("uid")
		if c.GetString("user_role") == string(models.RoleAdmin) {
			ownerId = ""
		}

		order, err := orderService.FindByID(ctx, orderId, ownerId)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type CreateOrderRequest struct {
	Cart_id             string `json:"cart_id" validate:"required"`
	Payment_method      string `json:"payment_method" validate:"required"`
	Delivery_address    string `json:"delivery_address" validate:"required"`
	Dispatch_rider_note string `json:"dispatch_rider_note"`
}

func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var payload CreateOrderRequest
		if err := c.BindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&payload); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		method, err := models.ParsePaymentMethod(payload.Payment_method)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var cart models.Cart
		err = cartCollection.FindOne(ctx, bson.M{"cart_id": payload.Cart_id, "owner_id": c.GetString("uid")}).Decode(&cart)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart"})
			return
		}

		order, err := orderService.CreateFromCart(ctx, cart, services.CreateOrderPayload{
			Payment_method:      method,
			Delivery_address:    payload.Delivery_address,
			Dispatch_rider_note: payload.Dispatch_rider_note,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyCart),
				errors.Is(err, services.ErrMealUnavailable),
				errors.Is(err, services.ErrMultipleKitchens),
				errors.Is(err, services.ErrCartCheckedOut):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			}
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

type UpdateOrderStatusRequest struct {
	Status     string `json:"status" validate:"required"`
	As_kitchen bool   `json:"as_kitchen"`
}

func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var payload UpdateOrderStatusRequest
		if err := c.BindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		targetStatus, err := models.ParseOrderStatus(payload.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderId := c.Param("order_id")
		order, err := orderService.FindByID(ctx, orderId, "")
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to retrieve order"})
			return
		}

		actor := services.Actor{Kind: services.ActorCustomer, User_id: c.GetString("uid")}
		if payload.As_kitchen {
			kitchen, err := KitchenByOwner(ctx, c.GetString("uid"))
			if err != nil {
				if errors.Is(err, services.ErrNotFound) {
					c.JSON(http.StatusForbidden, gin.H{"message": "user does not own a kitchen"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to retrieve kitchen"})
				return
			}
			actor = services.Actor{Kind: services.ActorKitchen, Kitchen_id: kitchen.Kitchen_id}
		}

		if err := services.AuthorizeTransition(*order, actor, targetStatus); err != nil {
			if errors.Is(err, services.ErrForbidden) {
				c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if err := orderService.TransitionStatus(ctx, order.Order_id, order.Status, targetStatus); err != nil {
			if errors.Is(err, services.ErrInvalidTransition) {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order status updated successfully"})
	}
}

type PayForOrderRequest struct {
	With string `json:"with" validate:"required"`
}

func PayForOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var payload PayForOrderRequest
		if err := c.BindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		method, err := models.ParsePaymentMethod(payload.With)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := orderService.FindByID(ctx, c.Param("order_id"), "")
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find order by id"})
			return
		}

		var payer models.User
		if err := userCollection.FindOne(ctx, bson.M{"user_id": c.GetString("uid")}).Decode(&payer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch payer"})
			return
		}

		initialize := services.InitializePaymentForOrderPayload{
			Order:  *order,
			Payer:  payer,
			Method: method,
		}

		var details *services.PaymentDetails
		if method == models.PaymentMethodWallet {
			// The debit, the transaction record and the status transition
			// commit together or not at all.
			_, err = database.WithTransaction(ctx, database.Client, func(ctx context.Context) (interface{}, error) {
				details, err = paymentService.InitializePaymentForOrder(ctx, initialize)
				return nil, err
			})
		} else {
			// The online path talks to the gateway; it must not run inside an
			// open transaction.
			details, err = paymentService.InitializePaymentForOrder(ctx, initialize)
		}
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAlreadyPaid):
				c.JSON(http.StatusBadRequest, gin.H{"error": "payment has already been made"})
			case errors.Is(err, services.ErrInsufficientBalance):
				c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient wallet balance"})
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
			case errors.Is(err, services.ErrGateway):
				c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway request failed"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "payment failed"})
			}
			return
		}
		c.JSON(http.StatusOK, details)
	}
}
