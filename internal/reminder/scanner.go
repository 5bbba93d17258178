// Package reminder scans for upcoming special suns and queues reminder jobs
// for delivery.
package reminder

import (
	"context"
	"strconv"
	"time"

	"github.com/giftgrug/giftgrug/internal/logging"
	"github.com/giftgrug/giftgrug/internal/metrics"
	"github.com/giftgrug/giftgrug/pkg/models"
)

// Repository defines the special sun persistence the scanner needs
type Repository interface {
	ListDueReminders(ctx context.Context, today time.Time, leadDays int) ([]*models.SpecialSun, error)
	MarkReminderSent(ctx context.Context, id string, leadDays int) error
}

// Publisher defines the interface for publishing reminder jobs to the queue
type Publisher interface {
	PublishReminder(ctx context.Context, job *models.ReminderJob) error
}

// Scanner periodically looks for special suns whose reminder is due and
// publishes a job for each. The sent flag is flipped only after a successful
// publish so a failed publish is retried on the next scan.
type Scanner struct {
	repo      Repository
	publisher Publisher
	logger    *logging.Logger
	interval  time.Duration
	cancel    context.CancelFunc
}

// NewScanner creates a reminder scanner
func NewScanner(repo Repository, publisher Publisher, logger *logging.Logger, interval time.Duration) *Scanner {
	if interval <= 0 {
		interval = time.Hour
	}

	return &Scanner{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		interval:  interval,
	}
}

// Start begins scanning. One pass runs immediately so a freshly booted
// server does not wait a full interval before catching up.
func (s *Scanner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.scanLoop(ctx)

	s.logger.Info("Reminder scanner started")
}

// Stop stops the scanner
func (s *Scanner) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.logger.Info("Reminder scanner stopped")
}

func (s *Scanner) scanLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Scan(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Scan(ctx, time.Now())
		}
	}
}

// Scan runs a single pass over both reminder lead times
func (s *Scanner) Scan(ctx context.Context, now time.Time) {
	start := time.Now()
	defer func() {
		metrics.ReminderScanDuration.Observe(time.Since(start).Seconds())
	}()

	for _, leadDays := range []int{models.ReminderLeadLong, models.ReminderLeadShort} {
		s.scanLead(ctx, now, leadDays)
	}
}

func (s *Scanner) scanLead(ctx context.Context, now time.Time, leadDays int) {
	suns, err := s.repo.ListDueReminders(ctx, now, leadDays)
	if err != nil {
		s.logger.ErrorWithErr("Failed to list due reminders", err)
		metrics.RecordError("reminder", "list_due")
		return
	}

	for _, sun := range suns {
		job := &models.ReminderJob{
			SpecialSunID:  sun.ID,
			UserID:        sun.UserID,
			Name:          sun.Name,
			RecipientType: sun.RecipientType,
			OccasionType:  sun.OccasionType,
			Date:          sun.Date,
			LeadDays:      leadDays,
			Notes:         sun.Notes,
		}

		if err := s.publisher.PublishReminder(ctx, job); err != nil {
			s.logger.LogReminderEvent(sun.ID, "publish_failed", leadDays, err)
			metrics.RecordError("reminder", "publish")
			continue
		}

		if err := s.repo.MarkReminderSent(ctx, sun.ID, leadDays); err != nil {
			// The job is already queued; the flag catches up next scan
			s.logger.LogReminderEvent(sun.ID, "mark_sent_failed", leadDays, err)
			metrics.RecordError("reminder", "mark_sent")
			continue
		}

		s.logger.LogReminderEvent(sun.ID, "published", leadDays, nil)
		metrics.RecordReminderPublished(strconv.Itoa(leadDays))
	}
}
