package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "giftgrug_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Chat Metrics
	ChatStreamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_chat_streams_total",
			Help: "Total number of chat completion streams",
		},
		[]string{"status", "identifier_type"},
	)

	ChatFragmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "giftgrug_chat_fragments_total",
			Help: "Total number of streamed output fragments",
		},
	)

	ChatStreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "giftgrug_chat_stream_duration_seconds",
			Help:    "Duration of chat completion streams in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2 minutes
		},
	)

	// Quota Metrics
	QuotaDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_quota_denials_total",
			Help: "Total number of chat requests denied by daily quota",
		},
		[]string{"identifier_type"},
	)

	QuotaUsageIncrements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_quota_usage_increments_total",
			Help: "Total number of usage ledger increments",
		},
		[]string{"identifier_type", "status"},
	)

	// Wishlist Metrics
	WishlistVotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_wishlist_votes_total",
			Help: "Total number of wishlist item votes cast",
		},
		[]string{"vote"},
	)

	WishlistsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "giftgrug_wishlists_created_total",
			Help: "Total number of wishlists created",
		},
	)

	// Reminder Metrics
	RemindersPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_reminders_published_total",
			Help: "Total number of reminder jobs published to the queue",
		},
		[]string{"lead_days"},
	)

	RemindersDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_reminders_delivered_total",
			Help: "Total number of reminder webhooks delivered",
		},
		[]string{"status"},
	)

	ReminderScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "giftgrug_reminder_scan_duration_seconds",
			Help:    "Duration of special sun reminder scans in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Storage Metrics
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_storage_operations_total",
			Help: "Total number of object storage operations",
		},
		[]string{"operation", "status"},
	)

	StorageBytesTransferred = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_storage_bytes_transferred_total",
			Help: "Total bytes transferred to/from object storage",
		},
		[]string{"operation"},
	)

	// Database Metrics
	DatabaseOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_database_operations_total",
			Help: "Total number of database operations",
		},
		[]string{"operation", "status"},
	)

	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "giftgrug_database_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Cache Metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftgrug_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordChatStream records a completed, failed, or denied chat stream
func RecordChatStream(status, identifierType string, fragments int, duration float64) {
	ChatStreamsTotal.WithLabelValues(status, identifierType).Inc()
	ChatFragmentsTotal.Add(float64(fragments))
	ChatStreamDuration.Observe(duration)
}

// RecordQuotaDenial records a chat request turned away at the daily limit
func RecordQuotaDenial(identifierType string) {
	QuotaDenialsTotal.WithLabelValues(identifierType).Inc()
}

// RecordUsageIncrement records a usage ledger write
func RecordUsageIncrement(identifierType, status string) {
	QuotaUsageIncrements.WithLabelValues(identifierType, status).Inc()
}

// RecordWishlistVote records a vote on a wishlist item
func RecordWishlistVote(vote string) {
	WishlistVotesTotal.WithLabelValues(vote).Inc()
}

// RecordReminderPublished records a reminder job handed to the queue
func RecordReminderPublished(leadDays string) {
	RemindersPublishedTotal.WithLabelValues(leadDays).Inc()
}

// RecordReminderDelivered records a reminder webhook delivery attempt
func RecordReminderDelivered(status string) {
	RemindersDeliveredTotal.WithLabelValues(status).Inc()
}

// RecordStorageOperation records an object storage operation
func RecordStorageOperation(operation, status string, bytesTransferred int64) {
	StorageOperationsTotal.WithLabelValues(operation, status).Inc()
	StorageBytesTransferred.WithLabelValues(operation).Add(float64(bytesTransferred))
}

// RecordDatabaseOperation records a database operation
func RecordDatabaseOperation(operation, status string, duration float64) {
	DatabaseOperationsTotal.WithLabelValues(operation, status).Inc()
	DatabaseOperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordCacheAccess records cache hit or miss
func RecordCacheAccess(cacheType string, hit bool) {
	if hit {
		CacheHitsTotal.WithLabelValues(cacheType).Inc()
	} else {
		CacheMissesTotal.WithLabelValues(cacheType).Inc()
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
