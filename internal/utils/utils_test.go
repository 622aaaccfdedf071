package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 1)

	token, err := m.Generate("user-1")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "storefront", claims.Issuer)
}

func TestTokenManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	m := NewTokenManager("secret", 1)
	other := NewTokenManager("other-secret", 1)

	token, err := other.Generate("user-1")
	require.NoError(t, err)
	_, err = m.Validate(token)
	assert.Error(t, err)

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := m.Generate("user-1")
	require.NoError(t, err)
	m.now = time.Now
	_, err = m.Validate(expired)
	assert.Error(t, err)

	_, err = m.Validate("not-a-jwt")
	assert.Error(t, err)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 8))
	assert.Equal(t, 1, TotalPages(8, 8))
	assert.Equal(t, 2, TotalPages(9, 8))
	assert.Equal(t, 0, TotalPages(9, 0))
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		page  int
	}{
		{"", 1},
		{"pageNumber=3", 3},
		{"pageNumber=0", 1},
		{"pageNumber=-4", 1},
		{"pageNumber=abc", 1},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/products?keyword=+phone+&"+tc.query, nil)

		params := GetPaginationParams(c, 8)
		assert.Equal(t, tc.page, params.Page, tc.query)
		assert.Equal(t, "phone", params.Keyword)
		offset, ok := params.Offset()
		assert.True(t, ok)
		assert.Equal(t, (tc.page-1)*8, offset)
	}
}

func TestPaginationOffsetOverflow(t *testing.T) {
	offset, ok := PaginationParams{Page: math.MaxInt64, Limit: 8}.Offset()
	assert.False(t, ok)
	assert.Zero(t, offset)

	_, ok = PaginationParams{Page: 1<<61 + 1, Limit: 8}.Offset()
	assert.False(t, ok)

	offset, ok = PaginationParams{Page: math.MaxInt / 8, Limit: 8}.Offset()
	assert.True(t, ok)
	assert.Positive(t, offset)
}

type sampleRequest struct {
	Name  string          `json:"name" validate:"notblank"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
	Qty   int             `json:"qty" validate:"min=1"`
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(sampleRequest{Name: "  ", Price: decimal.NewFromInt(-1), Qty: 0})
	require.Error(t, err)

	fields := map[string]string{}
	for _, v := range GetValidationErrors(err) {
		fields[v.Field] = v.Tag
	}
	assert.Equal(t, map[string]string{"name": "notblank", "price": "gte", "qty": "min"}, fields)

	assert.NoError(t, ValidateStruct(sampleRequest{Name: "ok", Price: decimal.Zero, Qty: 1}))
}
