package mongostore

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type priced struct {
	Price decimal.Decimal `bson:"price"`
}

func TestDecimalCodec_StoresDecimal128(t *testing.T) {
	reg := Registry()

	data, err := bson.MarshalWithRegistry(reg, priced{Price: decimal.RequireFromString("172.50")})
	require.NoError(t, err)

	raw := bson.Raw(data)
	d128, ok := raw.Lookup("price").Decimal128OK()
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString(d128.String()).Equal(decimal.RequireFromString("172.5")))

	var out priced
	require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &out))
	assert.True(t, out.Price.Equal(decimal.RequireFromString("172.5")))
}

func TestDecimalCodec_AcceptsLegacyNumbers(t *testing.T) {
	reg := Registry()

	cases := []struct {
		name string
		doc  bson.D
		want string
	}{
		{"double", bson.D{{Key: "price", Value: 89.99}}, "89.99"},
		{"int32", bson.D{{Key: "price", Value: int32(10)}}, "10"},
		{"string", bson.D{{Key: "price", Value: "19.95"}}, "19.95"},
		{"decimal128", bson.D{{Key: "price", Value: primitive.NewDecimal128(0, 1250)}}, "1250"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := bson.Marshal(tc.doc)
			require.NoError(t, err)

			var out priced
			require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &out))
			assert.True(t, out.Price.Equal(decimal.RequireFromString(tc.want)), out.Price.String())
		})
	}
}
