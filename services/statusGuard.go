package services

import (
	"go-food-marketplace/models"
)

// ActorKind identifies who is asking for a status transition.
type ActorKind string

const (
	// ActorSystem is the payment orchestrator itself; only it may move an
	// order out of AWAITING_PAYMENT.
	ActorSystem   ActorKind = "SYSTEM"
	ActorKitchen  ActorKind = "KITCHEN"
	ActorCustomer ActorKind = "CUSTOMER"
)

type Actor struct {
	Kind       ActorKind
	User_id    string
	Kitchen_id string
}

// transitionTable is the single authoritative list of legal edges and the
// actor kind each one requires. DELIVERED is terminal. CANCELLED is a declared
// status with no inbound edge here: cancellation is administrative-only and
// never reachable through the API.
var transitionTable = map[models.OrderStatus]map[models.OrderStatus]ActorKind{
	models.StatusAwaitingPayment: {
		models.StatusAwaitingAcknowledgement: ActorSystem,
	},
	models.StatusAwaitingAcknowledgement: {
		models.StatusPreparing: ActorKitchen,
	},
	models.StatusPreparing: {
		models.StatusInTransit: ActorKitchen,
	},
	models.StatusInTransit: {
		models.StatusDelivered: ActorCustomer,
	},
}

// AuthorizeTransition decides whether actor may move order to target.
// An edge missing from the table is ErrInvalidTransition; a legal edge
// requested by the wrong actor (wrong kind, or a kitchen/customer that does
// not own the order) is ErrForbidden. The order itself is never touched here.
func AuthorizeTransition(order models.Order, actor Actor, target models.OrderStatus) error {
	edges, ok := transitionTable[order.Status]
	if !ok {
		return ErrInvalidTransition
	}
	required, ok := edges[target]
	if !ok {
		return ErrInvalidTransition
	}
	if actor.Kind != required {
		return ErrForbidden
	}

	switch required {
	case ActorKitchen:
		if actor.Kitchen_id == "" || actor.Kitchen_id != order.Kitchen_id {
			return ErrForbidden
		}
	case ActorCustomer:
		if actor.User_id == "" || actor.User_id != order.Owner_id {
			return ErrForbidden
		}
	}
	return nil
}
