package notify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftgrug/giftgrug/pkg/models"
)

func testJob() *models.ReminderJob {
	return &models.ReminderJob{
		SpecialSunID:  "sun-1",
		UserID:        "user-1",
		Name:          "Womanfolk birthday",
		RecipientType: "womanfolk",
		OccasionType:  "birthday",
		Date:          time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		LeadDays:      models.ReminderLeadLong,
	}
}

func TestDeliverReminder(t *testing.T) {
	var gotBody []byte
	var gotSignature, gotEvent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("X-Webhook-Signature")
		gotEvent = r.Header.Get("X-Webhook-Event")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := New(server.URL, "test-secret")
	err := notifier.DeliverReminder(context.Background(), testJob())
	require.NoError(t, err)

	assert.Equal(t, "special_sun.reminder_due", gotEvent)

	var event Event
	require.NoError(t, json.Unmarshal(gotBody, &event))
	assert.Equal(t, "sun-1", event.Data.SpecialSunID)
	assert.Equal(t, models.ReminderLeadLong, event.Data.LeadDays)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	assert.Equal(t, want, gotSignature)
}

func TestDeliverReminderFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := New(server.URL, "")
	err := notifier.DeliverReminder(context.Background(), testJob())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestDeliverReminderUnconfigured(t *testing.T) {
	notifier := New("", "")
	assert.False(t, notifier.Configured())

	err := notifier.DeliverReminder(context.Background(), testJob())
	assert.Error(t, err)
}
