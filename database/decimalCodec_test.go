package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type moneyDoc struct {
	Balance decimal.Decimal `bson:"balance"`
}

func TestDecimalStoredAsDecimal128(t *testing.T) {
	registry := Registry()

	data, err := bson.MarshalWithRegistry(registry, moneyDoc{
		Balance: decimal.RequireFromString("4000.50"),
	})
	require.NoError(t, err)

	value := bson.Raw(data).Lookup("balance")
	assert.Equal(t, bsontype.Decimal128, value.Type)
	assert.Equal(t, "4000.50", value.Decimal128().String())
}

func TestDecimalRoundTrip(t *testing.T) {
	registry := Registry()

	for _, s := range []string{"0", "4000", "3999.99", "-250.5", "0.01"} {
		data, err := bson.MarshalWithRegistry(registry, moneyDoc{
			Balance: decimal.RequireFromString(s),
		})
		require.NoError(t, err, s)

		var decoded moneyDoc
		require.NoError(t, bson.UnmarshalWithRegistry(registry, data, &decoded), s)
		assert.True(t, decoded.Balance.Equal(decimal.RequireFromString(s)),
			"expected %s, got %s", s, decoded.Balance)
	}
}

func TestDecimalDecodesNumericForms(t *testing.T) {
	registry := Registry()

	tests := []struct {
		name  string
		doc   bson.M
		want  string
	}{
		{"int32", bson.M{"balance": int32(42)}, "42"},
		{"int64", bson.M{"balance": int64(4000)}, "4000"},
		{"string", bson.M{"balance": "1500.25"}, "1500.25"},
		{"null", bson.M{"balance": nil}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(tt.doc)
			require.NoError(t, err)

			var decoded moneyDoc
			require.NoError(t, bson.UnmarshalWithRegistry(registry, data, &decoded))
			assert.True(t, decoded.Balance.Equal(decimal.RequireFromString(tt.want)),
				"expected %s, got %s", tt.want, decoded.Balance)
		})
	}
}
