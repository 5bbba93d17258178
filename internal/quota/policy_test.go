package quota

import (
	"testing"

	"github.com/giftgrug/giftgrug/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	policy := NewPolicy(5, 25, Enforced)

	tests := []struct {
		name          string
		identType     string
		isAdmin       bool
		count         int
		wantAllowed   bool
		wantLimit     int
		wantRemaining int
	}{
		{"anonymous under limit", models.IdentifierTypeIP, false, 0, true, 5, 5},
		{"anonymous one below limit", models.IdentifierTypeIP, false, 4, true, 5, 1},
		{"anonymous at limit", models.IdentifierTypeIP, false, 5, false, 5, 0},
		{"anonymous over limit", models.IdentifierTypeIP, false, 9, false, 5, 0},
		{"signed-in under limit", models.IdentifierTypeUser, false, 0, true, 25, 25},
		{"signed-in one below limit", models.IdentifierTypeUser, false, 24, true, 25, 1},
		{"signed-in at limit", models.IdentifierTypeUser, false, 25, false, 25, 0},
		{"admin always allowed", models.IdentifierTypeUser, true, 1000, true, UnlimitedSentinel, UnlimitedSentinel},
		{"admin with ip identity", models.IdentifierTypeIP, true, 1000, true, UnlimitedSentinel, UnlimitedSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := policy.Decide(tt.identType, tt.isAdmin, tt.count)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantLimit, d.Limit)
			assert.Equal(t, tt.wantRemaining, d.Remaining)
		})
	}
}

// The policy must be monotonic: if a lower count is denied, every higher
// count is denied too.
func TestDecideMonotonic(t *testing.T) {
	policy := NewPolicy(5, 25, Enforced)

	for _, identType := range []string{models.IdentifierTypeIP, models.IdentifierTypeUser} {
		limit := policy.LimitFor(identType, false)
		denied := false
		for count := 0; count <= limit+3; count++ {
			d := policy.Decide(identType, false, count)
			if denied {
				assert.False(t, d.Allowed, "count %d allowed after a lower count was denied", count)
			}
			if !d.Allowed {
				denied = true
			}
		}
	}
}

func TestDecideDisabledMode(t *testing.T) {
	policy := NewPolicy(5, 25, Disabled)

	d := policy.Decide(models.IdentifierTypeIP, false, 1000000)
	assert.True(t, d.Allowed)
	assert.Equal(t, UnlimitedSentinel, d.Limit)
	assert.Equal(t, UnlimitedSentinel, d.Remaining)
}

func TestRemainingNeverNegative(t *testing.T) {
	policy := NewPolicy(5, 25, Enforced)

	d := policy.Decide(models.IdentifierTypeIP, false, 100)
	assert.Equal(t, 0, d.Remaining)
}

func TestLimitFor(t *testing.T) {
	policy := NewPolicy(5, 25, Enforced)

	assert.Equal(t, 5, policy.LimitFor(models.IdentifierTypeIP, false))
	assert.Equal(t, 25, policy.LimitFor(models.IdentifierTypeUser, false))
	assert.Equal(t, UnlimitedSentinel, policy.LimitFor(models.IdentifierTypeUser, true))
}
