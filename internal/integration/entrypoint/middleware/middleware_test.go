package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/integration/adapters"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) (*gin.Engine, func(userID, tenantID uuid.UUID) string) {
	t.Helper()
	tokens := adapters.NewTokenService("test-secret", time.Hour)

	r := gin.New()
	r.GET("/whoami", NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
		tenantID, _ := GetTenantIDFromContext(c)
		userID, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"tenant_id": tenantID, "user_id": userID})
	})

	mint := func(userID, tenantID uuid.UUID) string {
		token, err := tokens.GenerateAccessToken(context.Background(), userID, tenantID, "owner@agency.test")
		require.NoError(t, err)
		return token
	}
	return r, mint
}

func TestAuthenticate(t *testing.T) {
	r, mint := newAuthRouter(t)
	userID, tenantID := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "AUTH-030003"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "AUTH-030001"},
		{"empty token", "Bearer  ", http.StatusUnauthorized, "AUTH-030003"},
		{"garbage", "Bearer nope", http.StatusUnauthorized, "AUTH-030001"},
		{"no tenant", "Bearer " + mint(userID, uuid.Nil), http.StatusUnauthorized, "AUTH-030004"},
		{"valid", "Bearer " + mint(userID, tenantID), http.StatusOK, tenantID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/send", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	hit := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusAccepted, hit())
	assert.Equal(t, http.StatusAccepted, hit())
	assert.Equal(t, http.StatusTooManyRequests, hit())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusAccepted, hit())

	rl.Disable()
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusAccepted, hit())
	}
}
