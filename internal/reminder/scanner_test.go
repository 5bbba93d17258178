package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/giftgrug/giftgrug/internal/logging"
	"github.com/giftgrug/giftgrug/pkg/models"
)

type mockRepository struct {
	due        map[int][]*models.SpecialSun
	listErr    error
	markErr    error
	markedSent []string
}

func (m *mockRepository) ListDueReminders(ctx context.Context, today time.Time, leadDays int) ([]*models.SpecialSun, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.due[leadDays], nil
}

func (m *mockRepository) MarkReminderSent(ctx context.Context, id string, leadDays int) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.markedSent = append(m.markedSent, id)
	return nil
}

type mockPublisher struct {
	published []*models.ReminderJob
	err       error
}

func (m *mockPublisher) PublishReminder(ctx context.Context, job *models.ReminderJob) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, job)
	return nil
}

func testLogger(t *testing.T) *logging.Logger {
	logger, err := logging.NewDefaultLogger()
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func TestScanPublishesDueReminders(t *testing.T) {
	repo := &mockRepository{
		due: map[int][]*models.SpecialSun{
			models.ReminderLeadLong: {
				{ID: "sun-1", UserID: "user-1", Name: "Womanfolk birthday"},
			},
			models.ReminderLeadShort: {
				{ID: "sun-2", UserID: "user-2", Name: "Cave anniversary"},
			},
		},
	}
	publisher := &mockPublisher{}

	scanner := NewScanner(repo, publisher, testLogger(t), time.Hour)
	scanner.Scan(context.Background(), time.Now())

	assert.Len(t, publisher.published, 2)
	assert.Equal(t, "sun-1", publisher.published[0].SpecialSunID)
	assert.Equal(t, models.ReminderLeadLong, publisher.published[0].LeadDays)
	assert.Equal(t, "sun-2", publisher.published[1].SpecialSunID)
	assert.Equal(t, models.ReminderLeadShort, publisher.published[1].LeadDays)

	assert.Equal(t, []string{"sun-1", "sun-2"}, repo.markedSent)
}

func TestScanPublishFailureLeavesFlagUnset(t *testing.T) {
	repo := &mockRepository{
		due: map[int][]*models.SpecialSun{
			models.ReminderLeadLong: {
				{ID: "sun-1", UserID: "user-1", Name: "Womanfolk birthday"},
			},
		},
	}
	publisher := &mockPublisher{err: errors.New("queue down")}

	scanner := NewScanner(repo, publisher, testLogger(t), time.Hour)
	scanner.Scan(context.Background(), time.Now())

	// Unsent flag stays so the next scan retries
	assert.Empty(t, repo.markedSent)
}

func TestScanListFailureDoesNotPublish(t *testing.T) {
	repo := &mockRepository{listErr: errors.New("db down")}
	publisher := &mockPublisher{}

	scanner := NewScanner(repo, publisher, testLogger(t), time.Hour)
	scanner.Scan(context.Background(), time.Now())

	assert.Empty(t, publisher.published)
}

func TestStartStop(t *testing.T) {
	repo := &mockRepository{due: map[int][]*models.SpecialSun{}}
	publisher := &mockPublisher{}

	scanner := NewScanner(repo, publisher, testLogger(t), time.Hour)
	scanner.Start()
	time.Sleep(50 * time.Millisecond)
	scanner.Stop()
}
