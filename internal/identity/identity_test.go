package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/giftgrug/giftgrug/internal/middleware"
	"github.com/giftgrug/giftgrug/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminChecker struct {
	admins map[string]bool
}

func (f *fakeAdminChecker) IsAdmin(_ context.Context, userID string) bool {
	return f.admins[userID]
}

func newTestContext(t *testing.T, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, err := http.NewRequest("POST", "/api/v1/chat", nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req

	return c
}

func TestResolveAnonymousHashesIP(t *testing.T) {
	r := NewResolver("test-salt", nil)

	c := newTestContext(t, map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"})
	ident := r.Resolve(c)

	assert.Equal(t, models.IdentifierTypeIP, ident.Type)
	assert.False(t, ident.IsAdmin)
	// Raw address must never appear in the identifier
	assert.NotContains(t, ident.Identifier, "203.0.113.9")
	assert.Len(t, ident.Identifier, 64)
	assert.Equal(t, r.HashIP("203.0.113.9"), ident.Identifier)
}

func TestResolveDistinctIPsDistinctIdentifiers(t *testing.T) {
	r := NewResolver("test-salt", nil)

	a := r.HashIP("203.0.113.9")
	b := r.HashIP("203.0.113.10")

	assert.NotEqual(t, a, b)
}

func TestResolveSaltChangesIdentifier(t *testing.T) {
	a := NewResolver("salt-one", nil).HashIP("203.0.113.9")
	b := NewResolver("salt-two", nil).HashIP("203.0.113.9")

	assert.NotEqual(t, a, b)
}

func TestResolveFallsBackToRealIP(t *testing.T) {
	r := NewResolver("test-salt", nil)

	c := newTestContext(t, map[string]string{"X-Real-IP": "198.51.100.7"})
	ident := r.Resolve(c)

	assert.Equal(t, r.HashIP("198.51.100.7"), ident.Identifier)
}

func TestResolveUnknownBucket(t *testing.T) {
	r := NewResolver("test-salt", nil)

	c := newTestContext(t, nil)
	ident := r.Resolve(c)

	// No headers at all degrades to a shared bucket, never an error
	assert.Equal(t, models.IdentifierTypeIP, ident.Type)
	assert.Equal(t, r.HashIP("unknown"), ident.Identifier)
}

func TestResolveAuthenticatedUser(t *testing.T) {
	middleware.SetJWTSecret("test-secret")
	token, err := middleware.GenerateToken("user-abc", "man@cave.example", time.Hour)
	require.NoError(t, err)

	checker := &fakeAdminChecker{admins: map[string]bool{"user-abc": false}}
	r := NewResolver("test-salt", checker)

	c := newTestContext(t, map[string]string{"Authorization": "Bearer " + token})
	// OptionalAuth normally sets this; simulate it directly
	c.Set(middleware.AuthContextKey, "user-abc")

	ident := r.Resolve(c)
	assert.Equal(t, models.IdentifierTypeUser, ident.Type)
	assert.Equal(t, "user-abc", ident.Identifier)
	assert.False(t, ident.IsAdmin)
}

func TestResolveAdminFlag(t *testing.T) {
	checker := &fakeAdminChecker{admins: map[string]bool{"boss": true}}
	r := NewResolver("test-salt", checker)

	c := newTestContext(t, nil)
	c.Set(middleware.AuthContextKey, "boss")

	ident := r.Resolve(c)
	assert.True(t, ident.IsAdmin)
	assert.Equal(t, models.IdentifierTypeUser, ident.Type)
}
