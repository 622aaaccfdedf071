package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/repository/memstore"
	"github.com/javajoker/storefront/internal/router"
	"github.com/javajoker/storefront/internal/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("en"); err != nil {
		panic(err)
	}
	m.Run()
}

// envelope is the response body of every API call.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// app is a storefront backed by the in-memory store.
type app struct {
	router    http.Handler
	limits    *middleware.RateLimiters
	store     *repository.Store
	uploadDir string
}

func newApp(uploadDir string, mutate ...func(*config.Config)) (*app, error) {
	cfg := &config.Config{
		JWT:     config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Upload:  config.UploadConfig{Dir: uploadDir, MaxBytes: 1 << 20},
		Payment: config.PaymentConfig{Currency: "usd"},
		Catalog: config.CatalogConfig{PageSize: 8, TopLimit: 3},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	for _, m := range mutate {
		m(cfg)
	}

	store := memstore.New()
	svc, err := services.New(store, cfg)
	if err != nil {
		return nil, err
	}
	limits := middleware.NewRateLimiters(cfg.RateLimit)
	return &app{router: router.Initialize(svc, cfg, limits), limits: limits, store: store, uploadDir: uploadDir}, nil
}

func (a *app) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return a.send(method, path, header, body)
}

func (a *app) doWithLanguage(method, path, lang string, body interface{}) (*httptest.ResponseRecorder, envelope, error) {
	header := http.Header{}
	header.Set("Accept-Language", lang)
	return a.send(method, path, header, body)
}

func (a *app) send(method, path string, header http.Header, body interface{}) (*httptest.ResponseRecorder, envelope, error) {
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return nil, envelope{}, err
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			return w, env, err
		}
	}
	return w, env, nil
}

func (a *app) seedUser(name string, admin bool) (*models.User, error) {
	u := &models.User{Name: name, Email: models.NormalizeEmail(name + "@example.com"), IsAdmin: admin}
	if err := u.SetPassword("123456"); err != nil {
		return nil, err
	}
	u.Init(time.Now().UTC())
	return u, a.store.Users.Create(context.Background(), u)
}

func (a *app) seedProduct(name, price string, stock int) (*models.Product, error) {
	p := &models.Product{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		CountInStock: stock,
		Reviews:      []models.Review{},
	}
	p.Init(time.Now().UTC())
	return p, a.store.Products.Create(context.Background(), p)
}
