package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("en"); err != nil {
		panic(err)
	}
	m.Run()
}

type stubAuth map[string]*models.User

func (s stubAuth) Authenticate(_ context.Context, header string) (*models.User, error) {
	if u, ok := s[header]; ok {
		return u, nil
	}
	return nil, apperror.Unauthorized(i18n.KeyAuthInvalidToken)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) utils.APIError {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestParseAcceptLanguage(t *testing.T) {
	tests := map[string]string{
		"":                        "en",
		"es":                      "es",
		"es-MX,es;q=0.9,en;q=0.8": "es",
		"fr-FR,fr;q=0.9,es;q=0.5": "es",
		"de, EN-us":               "en",
		"pt_BR":                   "en",
		"  ;q=0.1, es_AR ;q=0.3":  "es",
	}
	for header, want := range tests {
		assert.Equal(t, want, parseAcceptLanguage(header), header)
	}
}

func TestAuthRequiredAndAdminRequired(t *testing.T) {
	john := &models.User{Name: "john"}
	john.ID = "u1"
	admin := &models.User{Name: "admin", IsAdmin: true}
	admin.ID = "u2"
	auth := stubAuth{"Bearer john": john, "Bearer admin": admin}

	r := gin.New()
	r.Use(I18nMiddleware())
	r.GET("/me", AuthRequired(auth), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		c.String(http.StatusOK, u.ID+":"+c.GetString("user_id"))
	})
	r.GET("/admin", AuthRequired(auth), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	serve := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := serve("/me", "Bearer john")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1:u1", w.Body.String())

	w = serve("/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, w).Code)

	w = serve("/admin", "Bearer john")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, w).Code)

	assert.Equal(t, http.StatusNoContent, serve("/admin", "Bearer admin").Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	defer rl.Stop()

	r := gin.New()
	r.Use(I18nMiddleware(), rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "RATE_LIMITED", decodeError(t, w).Code)
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Other clients have their own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}
