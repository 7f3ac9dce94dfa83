package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	valid := []string{
		"AWAITING_PAYMENT",
		"AWAITING_ACKNOWLEDGEMENT",
		"PREPARING",
		"IN_TRANSIT",
		"DELIVERED",
		"CANCELLED",
	}
	for _, s := range valid {
		status, err := ParseOrderStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, OrderStatus(s), status)
	}

	for _, s := range []string{"", "delivered", "SHIPPED", "AWAITING PAYMENT"} {
		_, err := ParseOrderStatus(s)
		assert.Error(t, err, s)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod("WALLET")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodWallet, method)

	method, err = ParsePaymentMethod("ONLINE")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodOnline, method)

	for _, s := range []string{"", "wallet", "CASH"} {
		_, err := ParsePaymentMethod(s)
		assert.Error(t, err, s)
	}
}

func TestParseTransactionType(t *testing.T) {
	txType, err := ParseTransactionType("DEBIT")
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeDebit, txType)

	_, err = ParseTransactionType("WITHDRAWAL")
	assert.Error(t, err)
}

func TestParseCartStatus(t *testing.T) {
	status, err := ParseCartStatus("NOT_CHECKED_OUT")
	require.NoError(t, err)
	assert.Equal(t, CartStatusNotCheckedOut, status)

	_, err = ParseCartStatus("OPEN")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("SUPERUSER")
	assert.Error(t, err)
}
