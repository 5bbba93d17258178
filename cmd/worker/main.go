// The worker consumes queued special sun reminder jobs and delivers them to
// the configured notification webhook.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftgrug/giftgrug/internal/config"
	"github.com/giftgrug/giftgrug/internal/logging"
	"github.com/giftgrug/giftgrug/internal/metrics"
	"github.com/giftgrug/giftgrug/internal/notify"
	"github.com/giftgrug/giftgrug/internal/queue"
	"github.com/giftgrug/giftgrug/pkg/models"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewDefaultLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	q, err := queue.New(cfg.Queue)
	if err != nil {
		logger.Fatalf("Failed to connect to queue: %v", err)
	}
	defer q.Close()

	notifier := notify.New(cfg.Reminder.WebhookURL, cfg.Reminder.WebhookKey)
	if !notifier.Configured() {
		logger.Warn("Notification webhook not configured, reminders will be dropped")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := func(job *models.ReminderJob) error {
		if !notifier.Configured() {
			// Ack rather than requeue forever
			logger.LogReminderEvent(job.SpecialSunID, "dropped_unconfigured", job.LeadDays, nil)
			metrics.RecordReminderDelivered("dropped")
			return nil
		}

		deliverCtx, deliverCancel := context.WithTimeout(ctx, 30*time.Second)
		defer deliverCancel()

		if err := notifier.DeliverReminder(deliverCtx, job); err != nil {
			logger.LogReminderEvent(job.SpecialSunID, "delivery_failed", job.LeadDays, err)
			metrics.RecordReminderDelivered("failed")
			return err
		}

		logger.LogReminderEvent(job.SpecialSunID, "delivered", job.LeadDays, nil)
		metrics.RecordReminderDelivered("success")
		return nil
	}

	if err := q.ConsumeReminders(ctx, handler); err != nil {
		logger.Fatalf("Failed to start consumer: %v", err)
	}

	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.NewServer(cfg.Metrics.Port + 1)
		go func() {
			if err := metricsSrv.Start(); err != nil {
				logger.ErrorWithErr("Metrics server failed", err)
			}
		}()
	}

	logger.Info("Reminder worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.ErrorWithErr("Metrics server shutdown failed", err)
		}
	}

	logger.Info("Worker stopped")
}
