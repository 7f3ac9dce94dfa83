package services

import (
	"context"
	"fmt"
	"log"

	"go-food-marketplace/models"

	"github.com/shopspring/decimal"
)

// Collaborator interfaces are kept narrow so the orchestrator can be tested
// against fakes; the mongo-backed services above satisfy them.

type WalletLedger interface {
	FindByOwnerID(ctx context.Context, ownerID string) (*models.Wallet, error)
	Debit(ctx context.Context, walletID string, amount decimal.Decimal, note string) error
}

type OrderLedger interface {
	FindByID(ctx context.Context, orderID string, ownerID string) (*models.Order, error)
	TransitionStatus(ctx context.Context, orderID string, from models.OrderStatus, to models.OrderStatus) error
}

type TransactionRecorder interface {
	CreateForUser(ctx context.Context, userID string, amount decimal.Decimal, txType models.TransactionType, note string) error
}

type PaymentIntents interface {
	Reserve(ctx context.Context, orderID string, payerID string, amount decimal.Decimal) (*models.PaymentIntent, error)
	Attach(ctx context.Context, intentID string, reference string, authorizationURL string) error
	Fail(ctx context.Context, intentID string) error
	Confirm(ctx context.Context, reference string) (*models.PaymentIntent, error)
}

type PaymentGateway interface {
	CreatePaymentRequest(ctx context.Context, email string, amount decimal.Decimal) (*PaymentRequest, error)
}

// PaymentRequest is the gateway's answer to a hosted payment request.
type PaymentRequest struct {
	Reference         string `json:"reference"`
	Authorization_url string `json:"authorization_url"`
}

// PaymentService settles order payments. The wallet path expects a
// caller-provided transaction (session-bound ctx): the debit, the transaction
// record and the status transition commit or roll back together. The online
// path must NOT run inside an open transaction, because it talks to the
// gateway over the network; it only reserves a payment intent and hands back
// the hosted payment link.
type PaymentService struct {
	Wallets      WalletLedger
	Orders       OrderLedger
	Transactions TransactionRecorder
	Intents      PaymentIntents
	Gateway      PaymentGateway
}

type InitializePaymentForOrderPayload struct {
	Order  models.Order
	Payer  models.User
	Method models.PaymentMethod
}

type PaymentDetails struct {
	Method            models.PaymentMethod `json:"method"`
	Reference         string               `json:"reference,omitempty"`
	Authorization_url string               `json:"authorization_url,omitempty"`
	Message           string               `json:"message"`
}

func (s *PaymentService) InitializePaymentForOrder(ctx context.Context, payload InitializePaymentForOrderPayload) (*PaymentDetails, error) {
	if payload.Order.Status != models.StatusAwaitingPayment {
		return nil, ErrAlreadyPaid
	}

	switch payload.Method {
	case models.PaymentMethodWallet:
		return s.payWithWallet(ctx, payload)
	case models.PaymentMethodOnline:
		return s.payOnline(ctx, payload)
	}
	return nil, fmt.Errorf("'%s' is not a valid payment method", payload.Method)
}

func (s *PaymentService) payWithWallet(ctx context.Context, payload InitializePaymentForOrderPayload) (*PaymentDetails, error) {
	wallet, err := s.Wallets.FindByOwnerID(ctx, payload.Payer.User_id)
	if err != nil {
		return nil, err
	}

	note := fmt.Sprintf("Payment for order %s", payload.Order.Order_id)
	if err := s.Wallets.Debit(ctx, wallet.Wallet_id, payload.Order.Total, note); err != nil {
		return nil, err
	}

	// The transition is conditioned on the order still awaiting payment, so a
	// concurrent settlement of the same order turns into ErrAlreadyPaid and
	// the enclosing transaction rolls the debit back.
	err = s.Orders.TransitionStatus(ctx, payload.Order.Order_id,
		models.StatusAwaitingPayment, models.StatusAwaitingAcknowledgement)
	if err != nil {
		if err == ErrInvalidTransition {
			return nil, ErrAlreadyPaid
		}
		return nil, err
	}

	return &PaymentDetails{
		Method:  models.PaymentMethodWallet,
		Message: "Payment successful",
	}, nil
}

func (s *PaymentService) payOnline(ctx context.Context, payload InitializePaymentForOrderPayload) (*PaymentDetails, error) {
	intent, err := s.Intents.Reserve(ctx, payload.Order.Order_id, payload.Payer.User_id, payload.Order.Total)
	if err != nil {
		return nil, err
	}
	if intent.Status == models.PaymentIntentConfirmed {
		return nil, ErrAlreadyPaid
	}
	if intent.Reference != "" {
		// A hosted payment request already exists for this order; reuse it
		// instead of asking the gateway for another one.
		return &PaymentDetails{
			Method:            models.PaymentMethodOnline,
			Reference:         intent.Reference,
			Authorization_url: intent.Authorization_url,
			Message:           "Payment link created",
		}, nil
	}

	var email string
	if payload.Payer.Email != nil {
		email = *payload.Payer.Email
	}
	request, err := s.Gateway.CreatePaymentRequest(ctx, email, payload.Order.Total)
	if err != nil {
		log.Printf("error occurred while creating payment request for order %s: %v", payload.Order.Order_id, err)
		if failErr := s.Intents.Fail(ctx, intent.Intent_id); failErr != nil {
			log.Printf("error occurred while marking intent %s failed: %v", intent.Intent_id, failErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if err := s.Intents.Attach(ctx, intent.Intent_id, request.Reference, request.Authorization_url); err != nil {
		return nil, err
	}

	return &PaymentDetails{
		Method:            models.PaymentMethodOnline,
		Reference:         request.Reference,
		Authorization_url: request.Authorization_url,
		Message:           "Payment link created",
	}, nil
}

// ConfirmOnlinePayment completes the online path once the gateway reports the
// charge settled. It is the entry point the webhook collaborator calls, and
// the caller provides the transaction the same way the pay route does for the
// wallet path. The intent flip, the transaction record and the status
// transition are one atomic step; replayed confirmations match no PENDING
// intent and change nothing.
func (s *PaymentService) ConfirmOnlinePayment(ctx context.Context, reference string) (*models.Order, error) {
	intent, err := s.Intents.Confirm(ctx, reference)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrAlreadyPaid
		}
		return nil, err
	}

	order, err := s.Orders.FindByID(ctx, intent.Order_id, "")
	if err != nil {
		return nil, err
	}

	note := fmt.Sprintf("Online payment for order %s", order.Order_id)
	if err := s.Transactions.CreateForUser(ctx, intent.Payer_id, intent.Amount, models.TransactionTypeDebit, note); err != nil {
		return nil, err
	}

	err = s.Orders.TransitionStatus(ctx, order.Order_id,
		models.StatusAwaitingPayment, models.StatusAwaitingAcknowledgement)
	if err != nil {
		if err == ErrInvalidTransition {
			return nil, ErrAlreadyPaid
		}
		return nil, err
	}

	order.Status = models.StatusAwaitingAcknowledgement
	return order, nil
}
