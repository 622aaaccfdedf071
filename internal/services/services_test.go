package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/repository/memstore"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWT:     config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Upload:  config.UploadConfig{Dir: t.TempDir(), MaxBytes: 1 << 20},
		Payment: config.PaymentConfig{Currency: "usd"},
		Catalog: config.CatalogConfig{PageSize: 8, TopLimit: 3},
	}
}

type fixture struct {
	svc   *Services
	store *repository.Store
	ctx   context.Context
}

func newFixture(t *testing.T, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	cfg := testConfig(t)
	for _, m := range mutate {
		m(cfg)
	}
	store := memstore.New()
	svc, err := New(store, cfg)
	require.NoError(t, err)
	return &fixture{svc: svc, store: store, ctx: context.Background()}
}

func (f *fixture) user(t *testing.T, name string, admin bool) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: models.NormalizeEmail(name + "@example.com"), IsAdmin: admin}
	require.NoError(t, u.SetPassword("123456"))
	u.Init(time.Now().UTC())
	require.NoError(t, f.store.Users.Create(f.ctx, u))
	return u
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:         name,
		Image:        "/images/" + name + ".jpg",
		Price:        decimal.RequireFromString(price),
		CountInStock: stock,
		Reviews:      []models.Review{},
	}
	p.Init(time.Now().UTC())
	require.NoError(t, f.store.Products.Create(f.ctx, p))
	return p
}

func assertKind(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
	if message != "" {
		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, message, appErr.Message)
	}
}
