// Package orchestrator routes generation requests between the cache and the
// model backend. Backend failures of any kind are contained here: Generate
// always returns a response, never an error.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/llm"
	"github.com/forkful/saucier/internal/llmcache"
	"github.com/forkful/saucier/internal/metrics"
)

type Orchestrator struct {
	client  llm.Client
	cache   *llmcache.Service
	metrics *metrics.Generation
	logger  *zap.Logger
}

// New wires the orchestrator explicitly; the metrics argument must not be
// nil (pass metrics.NewGeneration(nil) for an unregistered instance).
func New(client llm.Client, cache *llmcache.Service, m *metrics.Generation, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		client:  client,
		cache:   cache,
		metrics: m,
		logger:  logger,
	}
}

// Generate serves the request from the cache when possible, otherwise calls
// the backend. Successful backend responses are cached through the guarded
// insert; error payloads and transport faults are never cached.
func (o *Orchestrator) Generate(ctx context.Context, req *llm.Request) *llm.Response {
	o.metrics.Requests.Inc()

	if resp, ok := o.cache.CachedResponse(ctx, req); ok {
		o.metrics.CacheHits.Inc()
		return resp
	}
	o.metrics.CacheMisses.Inc()

	start := time.Now()
	resp, err := o.client.Generate(ctx, req)
	latency := time.Since(start)
	o.metrics.LatencySeconds.Observe(latency.Seconds())

	if err != nil {
		o.metrics.Errors.Inc()
		o.logger.Error("generation failed",
			zap.String("model", req.Model),
			zap.Duration("latency", latency),
			zap.Error(err))
		return &llm.Response{
			Model:        req.Model,
			Status:       llm.StatusError,
			ErrorMessage: fmt.Sprintf("failed to generate response: %v", err),
			LatencyMS:    latency.Milliseconds(),
		}
	}

	resp.LatencyMS = latency.Milliseconds()

	if resp.Status != llm.StatusSuccess {
		o.metrics.Errors.Inc()
		o.logger.Warn("backend reported failure",
			zap.String("model", resp.Model),
			zap.String("error", resp.ErrorMessage))
		return resp
	}

	// The insert is detached from the caller's cancellation so an abandoned
	// request still pays its result forward.
	o.cache.CacheResponse(context.WithoutCancel(ctx), req, resp)

	return resp
}

func (o *Orchestrator) IsAvailable(ctx context.Context) bool {
	return o.client.IsAvailable(ctx)
}

func (o *Orchestrator) ModelName() string {
	return o.client.ModelName()
}

func (o *Orchestrator) CacheStats(ctx context.Context) (llmcache.Stats, error) {
	return o.cache.Stats(ctx)
}

func (o *Orchestrator) CleanupCache(ctx context.Context) (int64, error) {
	return o.cache.CleanupExpired(ctx)
}
