package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giftgrug/giftgrug/internal/chat"
	"github.com/giftgrug/giftgrug/internal/metrics"
	"github.com/giftgrug/giftgrug/internal/quota"
	"github.com/giftgrug/giftgrug/pkg/models"
)

const usageDateFormat = "2006-01-02"

func quotaDeniedMessage(identifierType string) string {
	if identifierType == models.IdentifierTypeUser {
		return "Man talk much today. Even Grug need rest. Come back when sun rise again."
	}
	return "Man use all free talk. Man sign in, Grug talk more. Or come back when sun rise again."
}

// grugChat proxies a conversation to the completion service and re-streams
// the reply as server-sent events. The daily quota is checked before the
// upstream call and the ledger incremented only after a clean stream.
func (api *API) grugChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Man not say anything. Grug need words."})
		return
	}

	ident := api.resolver.Resolve(c)
	today := time.Now().UTC().Format(usageDateFormat)

	used := 0
	if api.policy.Mode == quota.Enforced && !ident.IsAdmin {
		count, err := api.usage.GetCount(c.Request.Context(), ident.Identifier, ident.Type, today)
		if err != nil {
			// Ledger read failures admit the request rather than block it
			api.logger.ErrorWithErr("Usage ledger read failed", err)
			metrics.RecordError("ledger", "read")
		} else {
			used = count
		}
	}

	decision := api.policy.Decide(ident.Type, ident.IsAdmin, used)
	api.logger.LogQuotaDecision(ident.Type, decision.Allowed, used, decision.Limit)
	if !decision.Allowed {
		metrics.RecordQuotaDenial(ident.Type)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       quotaDeniedMessage(ident.Type),
			"rateLimited": true,
			"remaining":   0,
		})
		return
	}

	if !api.completer.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Grug brain not connected yet. Come back soon."})
		return
	}

	start := time.Now()
	fragments, err := api.completer.StreamCompletion(c.Request.Context(), req.Messages)
	if err != nil {
		api.logger.ErrorWithErr("Completion call failed", err)
		metrics.RecordError("chat", "upstream")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug brain hurt. Try again?"})
		return
	}

	chat.SetStreamHeaders(c.Writer)
	c.Status(http.StatusOK)

	sent, err := chat.WriteSSE(c.Writer, fragments)
	duration := time.Since(start)
	api.logger.LogChatStream(ident.Type, sent, duration, err)
	if err != nil {
		// Partial output is already flushed; close without [DONE] and
		// leave the ledger untouched.
		metrics.RecordChatStream("failed", ident.Type, sent, duration.Seconds())
		return
	}

	metrics.RecordChatStream("completed", ident.Type, sent, duration.Seconds())

	if api.policy.Mode == quota.Enforced && !ident.IsAdmin {
		api.recordUsage(ident.Identifier, ident.Type, today)
	}
}

// recordUsage bumps the ledger after a served completion. Failures are
// logged and swallowed; the response has already been delivered.
func (api *API) recordUsage(identifier, identifierType, date string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := api.usage.Increment(ctx, identifier, identifierType, date); err != nil {
		api.logger.ErrorWithErr("Usage ledger increment failed", err)
		metrics.RecordUsageIncrement(identifierType, "error")
		return
	}
	metrics.RecordUsageIncrement(identifierType, "success")

	if api.cache != nil {
		if err := api.cache.InvalidateUsageStatus(ctx, identifier); err != nil {
			api.logger.ErrorWithErr("Usage cache invalidation failed", err)
		}
	}
}

// chatUsage reports the caller's advisory quota state without mutating the
// ledger.
func (api *API) chatUsage(c *gin.Context) {
	ident := api.resolver.Resolve(c)

	if api.policy.Mode == quota.Disabled {
		c.JSON(http.StatusOK, models.UsageStatus{Remaining: 99, Limit: 99, Used: 0, IsAdmin: false})
		return
	}

	if ident.IsAdmin {
		c.JSON(http.StatusOK, models.UsageStatus{
			Remaining: quota.UnlimitedSentinel,
			Limit:     quota.UnlimitedSentinel,
			Used:      0,
			IsAdmin:   true,
		})
		return
	}

	ctx := c.Request.Context()

	if api.cache != nil {
		if status, err := api.cache.GetUsageStatus(ctx, ident.Identifier); err == nil && status != nil {
			metrics.RecordCacheAccess("usage", true)
			c.JSON(http.StatusOK, status)
			return
		}
		metrics.RecordCacheAccess("usage", false)
	}

	limit := api.policy.LimitFor(ident.Type, false)
	today := time.Now().UTC().Format(usageDateFormat)

	used, err := api.usage.GetCount(ctx, ident.Identifier, ident.Type, today)
	if err != nil {
		// Advisory state only; fall back to an untouched free tier
		api.logger.ErrorWithErr("Usage ledger read failed", err)
		metrics.RecordError("ledger", "read")
		c.JSON(http.StatusOK, models.UsageStatus{
			Remaining: api.policy.FreeLimit,
			Limit:     api.policy.FreeLimit,
			Used:      0,
			IsAdmin:   false,
		})
		return
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	status := models.UsageStatus{
		Remaining: remaining,
		Limit:     limit,
		Used:      used,
		IsAdmin:   false,
	}

	if api.cache != nil {
		if err := api.cache.SetUsageStatus(ctx, ident.Identifier, &status, 30*time.Second); err != nil {
			api.logger.ErrorWithErr("Usage cache write failed", err)
		}
	}

	c.JSON(http.StatusOK, status)
}
