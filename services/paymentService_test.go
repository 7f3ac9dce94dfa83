package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-food-marketplace/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. They keep the same CAS semantics as the mongo-backed
// services: debits check the balance, transitions check the current status,
// confirmations only match PENDING intents.

type fakeWallets struct {
	wallet *models.Wallet
	debits []decimal.Decimal
}

func (f *fakeWallets) FindByOwnerID(ctx context.Context, ownerID string) (*models.Wallet, error) {
	if f.wallet == nil || f.wallet.Owner_id != ownerID {
		return nil, ErrNotFound
	}
	copied := *f.wallet
	return &copied, nil
}

func (f *fakeWallets) Debit(ctx context.Context, walletID string, amount decimal.Decimal, note string) error {
	if f.wallet == nil || f.wallet.Wallet_id != walletID {
		return ErrNotFound
	}
	if f.wallet.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	f.wallet.Balance = f.wallet.Balance.Sub(amount)
	f.debits = append(f.debits, amount)
	return nil
}

type fakeOrders struct {
	order       *models.Order
	transitions int
}

func (f *fakeOrders) FindByID(ctx context.Context, orderID string, ownerID string) (*models.Order, error) {
	if f.order == nil || f.order.Order_id != orderID {
		return nil, ErrNotFound
	}
	if ownerID != "" && f.order.Owner_id != ownerID {
		return nil, ErrNotFound
	}
	copied := *f.order
	return &copied, nil
}

func (f *fakeOrders) TransitionStatus(ctx context.Context, orderID string, from models.OrderStatus, to models.OrderStatus) error {
	if f.order == nil || f.order.Order_id != orderID {
		return ErrNotFound
	}
	if f.order.Status != from {
		return ErrInvalidTransition
	}
	f.order.Status = to
	f.transitions++
	return nil
}

type recordedTransaction struct {
	UserID string
	Amount decimal.Decimal
	Type   models.TransactionType
}

type fakeTransactions struct {
	records []recordedTransaction
}

func (f *fakeTransactions) CreateForUser(ctx context.Context, userID string, amount decimal.Decimal, txType models.TransactionType, note string) error {
	f.records = append(f.records, recordedTransaction{UserID: userID, Amount: amount, Type: txType})
	return nil
}

type fakeIntents struct {
	intent *models.PaymentIntent
	failed int
}

func (f *fakeIntents) Reserve(ctx context.Context, orderID string, payerID string, amount decimal.Decimal) (*models.PaymentIntent, error) {
	if f.intent == nil || f.intent.Status == models.PaymentIntentFailed {
		f.intent = &models.PaymentIntent{
			Intent_id: "intent-1",
			Order_id:  orderID,
			Payer_id:  payerID,
			Amount:    amount,
			Status:    models.PaymentIntentPending,
		}
	}
	copied := *f.intent
	return &copied, nil
}

func (f *fakeIntents) Attach(ctx context.Context, intentID string, reference string, authorizationURL string) error {
	if f.intent == nil || f.intent.Intent_id != intentID {
		return ErrNotFound
	}
	f.intent.Reference = reference
	f.intent.Authorization_url = authorizationURL
	return nil
}

func (f *fakeIntents) Fail(ctx context.Context, intentID string) error {
	if f.intent == nil || f.intent.Intent_id != intentID {
		return ErrNotFound
	}
	f.intent.Status = models.PaymentIntentFailed
	f.failed++
	return nil
}

func (f *fakeIntents) Confirm(ctx context.Context, reference string) (*models.PaymentIntent, error) {
	if f.intent == nil || f.intent.Reference != reference || f.intent.Status != models.PaymentIntentPending {
		return nil, ErrNotFound
	}
	f.intent.Status = models.PaymentIntentConfirmed
	copied := *f.intent
	return &copied, nil
}

type fakeGateway struct {
	calls int
	err   error
}

func (f *fakeGateway) CreatePaymentRequest(ctx context.Context, email string, amount decimal.Decimal) (*PaymentRequest, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &PaymentRequest{
		Reference:         fmt.Sprintf("ref-%d", f.calls),
		Authorization_url: fmt.Sprintf("https://checkout.example.com/%d", f.calls),
	}, nil
}

func paymentFixture(balance string) (*PaymentService, *fakeWallets, *fakeOrders, *fakeTransactions, *fakeIntents, *fakeGateway) {
	wallets := &fakeWallets{wallet: &models.Wallet{
		Wallet_id: "wallet-1",
		Owner_id:  "user-1",
		Balance:   decimal.RequireFromString(balance),
	}}
	orders := &fakeOrders{order: &models.Order{
		Order_id:   "order-1",
		Status:     models.StatusAwaitingPayment,
		Owner_id:   "user-1",
		Kitchen_id: "kitchen-1",
		Total:      decimal.RequireFromString("4000"),
	}}
	transactions := &fakeTransactions{}
	intents := &fakeIntents{}
	gateway := &fakeGateway{}
	service := &PaymentService{
		Wallets:      wallets,
		Orders:       orders,
		Transactions: transactions,
		Intents:      intents,
		Gateway:      gateway,
	}
	return service, wallets, orders, transactions, intents, gateway
}

func payerFixture() models.User {
	email := "ada@example.com"
	return models.User{User_id: "user-1", Email: &email}
}

func TestPayWithWalletDebitsOnceAndAdvancesOrder(t *testing.T) {
	service, wallets, orders, _, _, _ := paymentFixture("5000")

	details, err := service.InitializePaymentForOrder(context.Background(), InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethodWallet,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentMethodWallet, details.Method)
	assert.Equal(t, "1000", wallets.wallet.Balance.String())
	require.Len(t, wallets.debits, 1)
	assert.Equal(t, "4000", wallets.debits[0].String())
	assert.Equal(t, models.StatusAwaitingAcknowledgement, orders.order.Status)
	assert.Equal(t, 1, orders.transitions)
}

func TestPayWithWalletAlreadyPaidChangesNothing(t *testing.T) {
	service, wallets, orders, _, _, _ := paymentFixture("10000")

	payload := InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethodWallet,
	}
	_, err := service.InitializePaymentForOrder(context.Background(), payload)
	require.NoError(t, err)

	// The second attempt carries the refreshed order, which is no longer
	// awaiting payment.
	payload.Order = *orders.order
	_, err = service.InitializePaymentForOrder(context.Background(), payload)
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	assert.Equal(t, "6000", wallets.wallet.Balance.String())
	assert.Len(t, wallets.debits, 1)
	assert.Equal(t, 1, orders.transitions)
}

func TestPayWithWalletStaleOrderIsAlreadyPaid(t *testing.T) {
	// A racing settlement flipped the order after the caller read it. The
	// conditional transition misses and the whole attempt fails.
	service, _, orders, _, _, _ := paymentFixture("10000")

	staleOrder := *orders.order
	orders.order.Status = models.StatusAwaitingAcknowledgement

	_, err := service.InitializePaymentForOrder(context.Background(), InitializePaymentForOrderPayload{
		Order:  staleOrder,
		Payer:  payerFixture(),
		Method: models.PaymentMethodWallet,
	})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Equal(t, 0, orders.transitions)
}

func TestPayWithWalletInsufficientBalance(t *testing.T) {
	service, wallets, orders, _, _, _ := paymentFixture("3999")

	_, err := service.InitializePaymentForOrder(context.Background(), InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethodWallet,
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, "3999", wallets.wallet.Balance.String())
	assert.Empty(t, wallets.debits)
	assert.Equal(t, models.StatusAwaitingPayment, orders.order.Status)
}

func TestPayOnlineReturnsLinkWithoutAdvancingOrder(t *testing.T) {
	service, _, orders, _, intents, gateway := paymentFixture("0")

	details, err := service.InitializePaymentForOrder(context.Background(), InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethodOnline,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentMethodOnline, details.Method)
	assert.Equal(t, "ref-1", details.Reference)
	assert.NotEmpty(t, details.Authorization_url)
	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, models.StatusAwaitingPayment, orders.order.Status)
	assert.Equal(t, models.PaymentIntentPending, intents.intent.Status)
}

func TestPayOnlineRepeatReusesExistingLink(t *testing.T) {
	service, _, orders, _, _, gateway := paymentFixture("0")

	payload := InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethodOnline,
	}
	first, err := service.InitializePaymentForOrder(context.Background(), payload)
	require.NoError(t, err)
	second, err := service.InitializePaymentForOrder(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, first.Reference, second.Reference)
	assert.Equal(t, first.Authorization_url, second.Authorization_url)
	assert.Equal(t, 1, gateway.calls, "gateway asked for a second link")
}

func TestPayOnlineGatewayErrorFailsIntent(t *testing.T) {
	service, _, orders, transactions, intents, gateway := paymentFixture("0")
	gateway.err = errors.New("connection reset")

	_, err := service.InitializePaymentForOrder(context.Background(), InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethodOnline,
	})
	assert.ErrorIs(t, err, ErrGateway)

	assert.Equal(t, models.PaymentIntentFailed, intents.intent.Status)
	assert.Equal(t, models.StatusAwaitingPayment, orders.order.Status)
	assert.Empty(t, transactions.records)

	// A retry after the gateway recovers reserves a fresh intent.
	gateway.err = nil
	details, err := service.InitializePaymentForOrder(context.Background(), InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethodOnline,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, details.Reference)
}

func TestPayOnlineConfirmedIntentIsAlreadyPaid(t *testing.T) {
	service, _, orders, _, intents, gateway := paymentFixture("0")
	intents.intent = &models.PaymentIntent{
		Intent_id: "intent-1",
		Order_id:  "order-1",
		Payer_id:  "user-1",
		Reference: "ref-old",
		Status:    models.PaymentIntentConfirmed,
	}

	_, err := service.InitializePaymentForOrder(context.Background(), InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethodOnline,
	})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Equal(t, 0, gateway.calls)
}

func TestInitializePaymentRejectsUnknownMethod(t *testing.T) {
	service, _, orders, _, _, _ := paymentFixture("0")

	_, err := service.InitializePaymentForOrder(context.Background(), InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethod("CASH"),
	})
	assert.Error(t, err)
}

func TestConfirmOnlinePaymentSettlesOrderOnce(t *testing.T) {
	service, _, orders, transactions, _, _ := paymentFixture("0")

	_, err := service.InitializePaymentForOrder(context.Background(), InitializePaymentForOrderPayload{
		Order:  *orders.order,
		Payer:  payerFixture(),
		Method: models.PaymentMethodOnline,
	})
	require.NoError(t, err)

	order, err := service.ConfirmOnlinePayment(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAwaitingAcknowledgement, order.Status)
	assert.Equal(t, models.StatusAwaitingAcknowledgement, orders.order.Status)

	require.Len(t, transactions.records, 1)
	assert.Equal(t, "user-1", transactions.records[0].UserID)
	assert.Equal(t, models.TransactionTypeDebit, transactions.records[0].Type)
	assert.Equal(t, "4000", transactions.records[0].Amount.String())

	// Replayed webhook: no PENDING intent matches, nothing changes.
	_, err = service.ConfirmOnlinePayment(context.Background(), "ref-1")
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Len(t, transactions.records, 1)
	assert.Equal(t, 1, orders.transitions)
}

func TestConfirmOnlinePaymentUnknownReference(t *testing.T) {
	service, _, _, transactions, _, _ := paymentFixture("0")

	_, err := service.ConfirmOnlinePayment(context.Background(), "ref-bogus")
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Empty(t, transactions.records)
}
