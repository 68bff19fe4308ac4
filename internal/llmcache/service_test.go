package llmcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/llm"
	"github.com/forkful/saucier/internal/llmcache"
	"github.com/forkful/saucier/internal/store/memory"
	"github.com/forkful/saucier/internal/store/model"
)

func newCacheService(ttl time.Duration) (*llmcache.Service, *memory.Repository) {
	repo := memory.New()
	svc := llmcache.NewService(repo.Cache(), llmcache.Config{TTL: ttl}, zap.NewNop())
	return svc, repo
}

func testRequest() *llm.Request {
	return &llm.Request{
		Ingredients: []string{"tomato", "basil", "pasta"},
		Prompt:      "make dinner",
		Model:       "mistral",
		Temperature: 0.7,
	}
}

func TestCacheMissOnEmptyStore(t *testing.T) {
	svc, _ := newCacheService(time.Hour)

	resp, ok := svc.CachedResponse(context.Background(), testRequest())
	assert.False(t, ok)
	assert.Nil(t, resp)
	assert.False(t, svc.IsCached(context.Background(), testRequest()))
}

func TestCacheRoundTrip(t *testing.T) {
	svc, _ := newCacheService(time.Hour)
	ctx := context.Background()
	req := testRequest()

	svc.CacheResponse(ctx, req, &llm.Response{
		Content:    `{"title":"Pasta"}`,
		Model:      "mistral",
		TokensUsed: 42,
		Status:     llm.StatusSuccess,
		LatencyMS:  900,
	})

	assert.True(t, svc.IsCached(ctx, req))

	resp, ok := svc.CachedResponse(ctx, req)
	assert.True(t, ok)
	assert.Equal(t, `{"title":"Pasta"}`, resp.Content)
	assert.Equal(t, "mistral", resp.Model)
	assert.Equal(t, 42, resp.TokensUsed)
	assert.True(t, resp.Cached)
	assert.Equal(t, llm.StatusCacheHit, resp.Status)
	assert.Equal(t, int64(0), resp.LatencyMS)
}

func TestCacheHitRequiresSameFingerprint(t *testing.T) {
	svc, _ := newCacheService(time.Hour)
	ctx := context.Background()

	svc.CacheResponse(ctx, testRequest(), &llm.Response{Content: "x", Status: llm.StatusSuccess})

	// Same ingredients, different order and casing, still hits.
	reordered := testRequest()
	reordered.Ingredients = []string{"Pasta", "BASIL", " tomato"}
	assert.True(t, svc.IsCached(ctx, reordered))

	other := testRequest()
	other.Ingredients = append(other.Ingredients, "garlic")
	assert.False(t, svc.IsCached(ctx, other))
}

func TestExpiredEntryIsMiss(t *testing.T) {
	svc, repo := newCacheService(time.Hour)
	ctx := context.Background()
	req := testRequest()

	hash := llmcache.Fingerprint(req)
	err := repo.Cache().Insert(ctx, &model.CacheEntry{
		ID:        "e1",
		InputHash: hash,
		Response:  "stale",
		Model:     "mistral",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	assert.NoError(t, err)

	// Raw lookup still surfaces the row; the service filters it.
	raw, err := repo.Cache().GetByHash(ctx, hash)
	assert.NoError(t, err)
	assert.Equal(t, "stale", raw.Response)

	resp, ok := svc.CachedResponse(ctx, req)
	assert.False(t, ok)
	assert.Nil(t, resp)
	assert.False(t, svc.IsCached(ctx, req))
}

func TestGuardedInsertKeepsFirstWriter(t *testing.T) {
	svc, repo := newCacheService(time.Hour)
	ctx := context.Background()
	req := testRequest()

	svc.CacheResponse(ctx, req, &llm.Response{Content: "first", Status: llm.StatusSuccess})
	svc.CacheResponse(ctx, req, &llm.Response{Content: "second", Status: llm.StatusSuccess})

	entry, err := repo.Cache().GetByHash(ctx, llmcache.Fingerprint(req))
	assert.NoError(t, err)
	assert.Equal(t, "first", entry.Response)

	total, err := repo.Cache().CountTotal(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestCleanupExpired(t *testing.T) {
	svc, repo := newCacheService(time.Hour)
	ctx := context.Background()

	svc.CacheResponse(ctx, testRequest(), &llm.Response{Content: "live", Status: llm.StatusSuccess})
	_ = repo.Cache().Insert(ctx, &model.CacheEntry{
		ID:        "old",
		InputHash: "deadbeef",
		Response:  "stale",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	deleted, err := svc.CleanupExpired(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	total, _ := repo.Cache().CountTotal(ctx)
	assert.Equal(t, int64(1), total)

	// Idempotent on a clean store.
	deleted, err = svc.CleanupExpired(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestStatsAndHitRate(t *testing.T) {
	svc, repo := newCacheService(time.Hour)
	ctx := context.Background()

	stats, err := svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, stats.HitRate())

	svc.CacheResponse(ctx, testRequest(), &llm.Response{Content: "live", Status: llm.StatusSuccess})
	_ = repo.Cache().Insert(ctx, &model.CacheEntry{
		ID:        "old",
		InputHash: "deadbeef",
		Response:  "stale",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	stats, err = svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.ValidEntries)
	assert.Equal(t, int64(2), stats.TotalEntries)
	assert.Equal(t, 0.5, stats.HitRate())
}
