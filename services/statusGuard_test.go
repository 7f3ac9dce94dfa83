package services

import (
	"testing"

	"go-food-marketplace/models"

	"github.com/stretchr/testify/assert"
)

func testOrder(status models.OrderStatus) models.Order {
	return models.Order{
		Order_id:   "order-1",
		Status:     status,
		Kitchen_id: "kitchen-1",
		Owner_id:   "user-1",
	}
}

func TestAuthorizeTransition(t *testing.T) {
	system := Actor{Kind: ActorSystem}
	owner := Actor{Kind: ActorCustomer, User_id: "user-1"}
	stranger := Actor{Kind: ActorCustomer, User_id: "user-2"}
	kitchen := Actor{Kind: ActorKitchen, Kitchen_id: "kitchen-1"}
	otherKitchen := Actor{Kind: ActorKitchen, Kitchen_id: "kitchen-2"}

	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   Actor
		wantErr error
	}{
		{"payment success advances awaiting payment", models.StatusAwaitingPayment, models.StatusAwaitingAcknowledgement, system, nil},
		{"customer cannot fake payment", models.StatusAwaitingPayment, models.StatusAwaitingAcknowledgement, owner, ErrForbidden},
		{"kitchen cannot fake payment", models.StatusAwaitingPayment, models.StatusAwaitingAcknowledgement, kitchen, ErrForbidden},

		{"kitchen acknowledges order", models.StatusAwaitingAcknowledgement, models.StatusPreparing, kitchen, nil},
		{"foreign kitchen cannot acknowledge", models.StatusAwaitingAcknowledgement, models.StatusPreparing, otherKitchen, ErrForbidden},
		{"customer cannot acknowledge", models.StatusAwaitingAcknowledgement, models.StatusPreparing, owner, ErrForbidden},

		{"kitchen dispatches order", models.StatusPreparing, models.StatusInTransit, kitchen, nil},
		{"foreign kitchen cannot dispatch", models.StatusPreparing, models.StatusInTransit, otherKitchen, ErrForbidden},

		{"owner confirms delivery", models.StatusInTransit, models.StatusDelivered, owner, nil},
		{"stranger cannot confirm delivery", models.StatusInTransit, models.StatusDelivered, stranger, ErrForbidden},
		{"kitchen cannot confirm delivery", models.StatusInTransit, models.StatusDelivered, kitchen, ErrForbidden},
		{"system cannot confirm delivery", models.StatusInTransit, models.StatusDelivered, system, ErrForbidden},

		{"cannot skip ahead to preparing", models.StatusAwaitingPayment, models.StatusPreparing, kitchen, ErrInvalidTransition},
		{"cannot skip ahead to delivered", models.StatusAwaitingAcknowledgement, models.StatusDelivered, owner, ErrInvalidTransition},
		{"cannot move backwards", models.StatusPreparing, models.StatusAwaitingAcknowledgement, kitchen, ErrInvalidTransition},
		{"delivered is terminal", models.StatusDelivered, models.StatusInTransit, kitchen, ErrInvalidTransition},

		{"cancellation is not reachable for owner", models.StatusAwaitingPayment, models.StatusCancelled, owner, ErrInvalidTransition},
		{"cancellation is not reachable for kitchen", models.StatusPreparing, models.StatusCancelled, kitchen, ErrInvalidTransition},
		{"cancellation is not reachable for system", models.StatusAwaitingPayment, models.StatusCancelled, system, ErrInvalidTransition},
		{"cancelled is terminal", models.StatusCancelled, models.StatusAwaitingPayment, system, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeTransition(testOrder(tt.from), tt.actor, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeTransitionKitchenWithoutID(t *testing.T) {
	actor := Actor{Kind: ActorKitchen}
	err := AuthorizeTransition(testOrder(models.StatusAwaitingAcknowledgement), actor, models.StatusPreparing)
	assert.ErrorIs(t, err, ErrForbidden)
}
