// Package llmcache is the content-addressable cache in front of the model
// backend. Entries are keyed by a fingerprint of the normalized request and
// expire after a configured TTL.
package llmcache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/llm"
	"github.com/forkful/saucier/internal/store"
	"github.com/forkful/saucier/internal/store/model"
)

type Config struct {
	// TTL is the lifetime applied uniformly at insert time.
	TTL time.Duration
}

// Stats is a point-in-time view of the cache.
type Stats struct {
	ValidEntries int64
	TotalEntries int64
}

// HitRate is the share of entries still valid; 0.0 on an empty cache.
func (s Stats) HitRate() float64 {
	if s.TotalEntries == 0 {
		return 0.0
	}
	return float64(s.ValidEntries) / float64(s.TotalEntries)
}

type Service struct {
	repo   store.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo store.CacheRepository, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		ttl:    cfg.TTL,
		logger: logger,
		now:    time.Now,
	}
}

// IsCached reports whether a valid, non-expired entry exists for the
// request. A store fault is logged and reported as a miss, never as a hit.
func (s *Service) IsCached(ctx context.Context, req *llm.Request) bool {
	hash := Fingerprint(req)
	ok, err := s.repo.ExistsValid(ctx, hash, s.now())
	if err != nil {
		s.logger.Warn("cache existence check failed, treating as miss",
			zap.String("hash", hash), zap.Error(err))
		return false
	}
	return ok
}

// CachedResponse returns the cached response for the request, when one
// exists and has not expired. The raw lookup returns expired entries too;
// the validity check happens here, on purpose, so the two read paths stay
// distinguishable.
func (s *Service) CachedResponse(ctx context.Context, req *llm.Request) (*llm.Response, bool) {
	hash := Fingerprint(req)

	entry, err := s.repo.GetByHash(ctx, hash)
	if err == store.ErrNotFound {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("cache lookup failed, treating as miss",
			zap.String("hash", hash), zap.Error(err))
		return nil, false
	}

	now := s.now()
	if entry.Expired(now) {
		return nil, false
	}

	s.logger.Debug("cache hit",
		zap.String("hash", hash),
		zap.Duration("age", now.Sub(entry.CreatedAt)))

	return &llm.Response{
		Content:    entry.Response,
		Model:      entry.Model,
		TokensUsed: entry.TokensUsed,
		Cached:     true,
		Status:     llm.StatusCacheHit,
		LatencyMS:  0,
	}, true
}

// CacheResponse performs the guarded insert: re-check for an existing entry
// and skip when one is already present, so two concurrent miss paths for the
// same fingerprint leave exactly one persisted entry. Only success payloads
// may reach this method.
func (s *Service) CacheResponse(ctx context.Context, req *llm.Request, resp *llm.Response) {
	hash := Fingerprint(req)

	if _, err := s.repo.GetByHash(ctx, hash); err == nil {
		// first writer already won; this response still went to its caller
		return
	} else if err != store.ErrNotFound {
		s.logger.Warn("cache pre-insert check failed, skipping insert",
			zap.String("hash", hash), zap.Error(err))
		return
	}

	now := s.now()
	entry := &model.CacheEntry{
		ID:         uuid.NewString(),
		InputHash:  hash,
		Response:   resp.Content,
		Model:      resp.Model,
		TokensUsed: resp.TokensUsed,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Warn("cache insert failed",
			zap.String("hash", hash), zap.Error(err))
	}
}

// CleanupExpired removes every entry past its lifetime and returns how many
// were deleted. Safe on an empty store.
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("expired cache entries removed", zap.Int64("count", deleted))
	}
	return deleted, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	now := s.now()

	valid, err := s.repo.CountValid(ctx, now)
	if err != nil {
		return Stats{}, err
	}
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{ValidEntries: valid, TotalEntries: total}, nil
}
