// Package identity resolves the rate-limit identity of an inbound request:
// the authenticated user ID when a valid session is present, otherwise a
// salted hash of the client address. Resolution never fails; requests with
// no usable address share an "unknown" bucket.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/giftgrug/giftgrug/internal/middleware"
	"github.com/giftgrug/giftgrug/pkg/models"
	"github.com/gin-gonic/gin"
)

// Identity is the resolved rate-limit identity of a caller
type Identity struct {
	Identifier string
	Type       string
	IsAdmin    bool
}

// AdminChecker reports whether an account has the admin flag set
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) bool
}

// Resolver derives identities from requests
type Resolver struct {
	salt    string
	profile AdminChecker
}

// NewResolver creates a resolver. The salt keeps raw client addresses out of
// persisted identifiers and logs.
func NewResolver(salt string, profile AdminChecker) *Resolver {
	return &Resolver{salt: salt, profile: profile}
}

// Resolve determines the caller's identity from the request context
func (r *Resolver) Resolve(c *gin.Context) Identity {
	if userID, ok := middleware.GetUserID(c); ok {
		isAdmin := false
		if r.profile != nil {
			isAdmin = r.profile.IsAdmin(c.Request.Context(), userID)
		}
		return Identity{
			Identifier: userID,
			Type:       models.IdentifierTypeUser,
			IsAdmin:    isAdmin,
		}
	}

	return Identity{
		Identifier: r.HashIP(clientIP(c)),
		Type:       models.IdentifierTypeIP,
		IsAdmin:    false,
	}
}

// HashIP returns the hex SHA-256 of the address concatenated with the salt
func (r *Resolver) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + r.salt))
	return hex.EncodeToString(sum[:])
}

// clientIP extracts the best-effort client address: first forwarded-for
// entry, then the real-ip header, then "unknown".
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	return "unknown"
}
