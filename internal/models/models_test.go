package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_AddReviewRecomputesRating(t *testing.T) {
	p := &Product{}

	p.AddReview(Review{UserID: "a", Rating: 5})
	p.AddReview(Review{UserID: "b", Rating: 2})
	p.AddReview(Review{UserID: "c", Rating: 4})

	assert.Equal(t, 3, p.NumReviews)
	assert.InDelta(t, 11.0/3.0, p.Rating, 1e-9)
	assert.True(t, p.HasReviewFrom("b"))
	assert.False(t, p.HasReviewFrom("z"))
}

func TestProduct_RecomputeRatingWithoutReviews(t *testing.T) {
	p := &Product{Rating: 4.5, NumReviews: 12}

	p.RecomputeRating()

	assert.Zero(t, p.Rating)
	assert.Zero(t, p.NumReviews)
}

func TestOrder_Status(t *testing.T) {
	o := &Order{}
	assert.Equal(t, OrderStatusPlaced, o.Status())

	o.IsPaid = true
	assert.Equal(t, OrderStatusPaid, o.Status())

	o.IsDelivered = true
	assert.Equal(t, OrderStatusDelivered, o.Status())
}

func TestUser_PasswordRoundTrip(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("secret123"))

	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("secret123"))
	assert.Error(t, u.CheckPassword("wrong"))
}

func TestUser_PasswordNeverSerialised(t *testing.T) {
	u := &User{Name: "Jane", Email: "jane@example.com", PasswordHash: "hash"}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hash")
	assert.Contains(t, string(data), `"isAdmin":false`)
}

func TestOrder_PricesEncodeAsNumbers(t *testing.T) {
	o := &Order{TotalPrice: decimal.RequireFromString("172.50")}
	o.Init(time.Now())

	data, err := json.Marshal(o)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"totalPrice":172.5`)
	assert.NotEmpty(t, o.ID)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}
