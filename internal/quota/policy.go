// Package quota implements the daily message quota policy for the chat
// assistant. The policy itself is a pure function; persistence of the
// per-identifier counters lives in the database package.
package quota

import (
	"github.com/giftgrug/giftgrug/pkg/models"
)

// UnlimitedSentinel marks an unbounded limit or remaining count.
const UnlimitedSentinel = -1

// Mode controls whether quota decisions are enforced. Resolved once at
// startup; Disabled is the documented fallback for local development
// without a database, not a production security boundary.
type Mode int

const (
	// Enforced applies the configured daily limits.
	Enforced Mode = iota
	// Disabled admits every request as if unlimited.
	Disabled
)

// Policy holds the fixed daily limits
type Policy struct {
	FreeLimit     int
	SignedInLimit int
	Mode          Mode
}

// Decision is the outcome of a quota check
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
}

// NewPolicy creates a policy with the given limits and mode
func NewPolicy(freeLimit, signedInLimit int, mode Mode) *Policy {
	return &Policy{
		FreeLimit:     freeLimit,
		SignedInLimit: signedInLimit,
		Mode:          mode,
	}
}

// Decide maps (identifier type, admin flag, current count) to an admission
// decision. Admins and disabled enforcement are always allowed with the
// unlimited sentinel. The check is a strict less-than: the count reflects
// served messages, and the increment happens only after a completion is
// produced.
func (p *Policy) Decide(identifierType string, isAdmin bool, currentCount int) Decision {
	if isAdmin || p.Mode == Disabled {
		return Decision{
			Allowed:   true,
			Limit:     UnlimitedSentinel,
			Remaining: UnlimitedSentinel,
		}
	}

	limit := p.FreeLimit
	if identifierType == models.IdentifierTypeUser {
		limit = p.SignedInLimit
	}

	remaining := limit - currentCount
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   currentCount < limit,
		Limit:     limit,
		Remaining: remaining,
	}
}

// LimitFor returns the daily limit for an identifier type
func (p *Policy) LimitFor(identifierType string, isAdmin bool) int {
	if isAdmin || p.Mode == Disabled {
		return UnlimitedSentinel
	}
	if identifierType == models.IdentifierTypeUser {
		return p.SignedInLimit
	}
	return p.FreeLimit
}
