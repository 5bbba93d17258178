package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/giftgrug/giftgrug/pkg/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	cache, err := NewCache(mr.Host(), mr.Server().Addr().Port, "", 0)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create cache: %v", err)
	}

	return cache, mr
}

func TestNewCache(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()
	if err := cache.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestCache_ProductListing(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	products := []*models.Product{
		{
			ID:         "prod-1",
			GrugName:   "Shiny Rock on String",
			RealName:   "Necklace",
			Category:   "shiny-rocks-string",
			PriceRange: models.PriceRangeSome,
			Price:      39.99,
			IsActive:   true,
		},
	}

	if err := cache.SetProducts(ctx, "affiliate", products, 5*time.Minute); err != nil {
		t.Fatalf("SetProducts failed: %v", err)
	}

	retrieved, err := cache.GetProducts(ctx, "affiliate")
	if err != nil {
		t.Fatalf("GetProducts failed: %v", err)
	}
	if len(retrieved) != 1 {
		t.Fatalf("Expected 1 product, got %d", len(retrieved))
	}
	if retrieved[0].GrugName != "Shiny Rock on String" {
		t.Errorf("Expected grug name to round-trip, got %s", retrieved[0].GrugName)
	}
}

func TestCache_ProductMiss(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	products, err := cache.GetProducts(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("GetProducts on miss should not error: %v", err)
	}
	if products != nil {
		t.Error("Expected nil on cache miss")
	}
}

func TestCache_InvalidateProducts(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	if err := cache.SetProducts(ctx, "picks", []*models.Product{{ID: "p1"}}, time.Minute); err != nil {
		t.Fatalf("SetProducts failed: %v", err)
	}
	if err := cache.SetProducts(ctx, "panic", []*models.Product{{ID: "p2"}}, time.Minute); err != nil {
		t.Fatalf("SetProducts failed: %v", err)
	}

	if err := cache.InvalidateProducts(ctx); err != nil {
		t.Fatalf("InvalidateProducts failed: %v", err)
	}

	for _, key := range []string{"picks", "panic"} {
		products, err := cache.GetProducts(ctx, key)
		if err != nil {
			t.Fatalf("GetProducts failed: %v", err)
		}
		if products != nil {
			t.Errorf("Expected listing %q to be invalidated", key)
		}
	}
}

func TestCache_Scribble(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	scribble := &models.Scribble{
		ID:      "scr-1",
		Slug:    "three-gift-rules",
		Title:   "Three Gift Rules Grug Never Break",
		Content: "Rule one.\n\nRule two.",
	}

	if err := cache.SetScribble(ctx, scribble, time.Minute); err != nil {
		t.Fatalf("SetScribble failed: %v", err)
	}

	retrieved, err := cache.GetScribble(ctx, "three-gift-rules")
	if err != nil {
		t.Fatalf("GetScribble failed: %v", err)
	}
	if retrieved == nil || retrieved.Title != scribble.Title {
		t.Errorf("Scribble did not round-trip: %+v", retrieved)
	}
}

func TestCache_UsageStatus(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	status := &models.UsageStatus{Remaining: 3, Limit: 5, Used: 2}
	if err := cache.SetUsageStatus(ctx, "abc123", status, 30*time.Second); err != nil {
		t.Fatalf("SetUsageStatus failed: %v", err)
	}

	retrieved, err := cache.GetUsageStatus(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetUsageStatus failed: %v", err)
	}
	if retrieved == nil || retrieved.Remaining != 3 {
		t.Errorf("Usage status did not round-trip: %+v", retrieved)
	}

	if err := cache.InvalidateUsageStatus(ctx, "abc123"); err != nil {
		t.Fatalf("InvalidateUsageStatus failed: %v", err)
	}

	retrieved, err = cache.GetUsageStatus(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetUsageStatus failed: %v", err)
	}
	if retrieved != nil {
		t.Error("Expected usage status to be invalidated")
	}
}
