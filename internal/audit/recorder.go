// Package audit persists one RecipeGeneration record per generation
// attempt, asynchronously, so the request path never blocks on the audit
// write and observability survives backend failures.
package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/store"
	"github.com/forkful/saucier/internal/store/model"
)

type Recorder interface {
	Record(gen *model.RecipeGeneration)
	Start(ctx context.Context)
	Stop()
}

type recorder struct {
	logger    *zap.Logger
	repo      store.Repository
	genChan   chan *model.RecipeGeneration
	quit      chan struct{}
	stopOnce  sync.Once
	flushTime time.Duration
}

func NewRecorder(logger *zap.Logger, repo store.Repository) Recorder {
	return &recorder{
		logger:    logger,
		repo:      repo,
		genChan:   make(chan *model.RecipeGeneration, 4096),
		quit:      make(chan struct{}),
		flushTime: 2 * time.Second,
	}
}

// Record enqueues the attempt. Records arriving after shutdown, or when the
// buffer is full, are dropped with a warning; auditing must never stall
// generation. genChan itself is never closed, so Record cannot panic.
func (r *recorder) Record(gen *model.RecipeGeneration) {
	select {
	case <-r.quit:
		r.logger.Warn("audit recorder stopped, dropping record", zap.String("id", gen.ID))
		return
	default:
	}

	select {
	case r.genChan <- gen:
	default:
		r.logger.Warn("audit buffer full, dropping record", zap.String("id", gen.ID))
	}
}

func (r *recorder) Start(ctx context.Context) {
	go r.worker(ctx)
}

// Stop signals the worker to drain and exit. Safe to call more than once
// and regardless of whether the worker already left via its context.
func (r *recorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.quit)
	})
}

func (r *recorder) worker(ctx context.Context) {
	pending := make([]*model.RecipeGeneration, 0, 32)
	ticker := time.NewTicker(r.flushTime)
	defer ticker.Stop()

	flush := func() {
		for _, gen := range pending {
			if err := r.repo.Generations().Create(context.Background(), gen); err != nil {
				r.logger.Error("failed to persist generation record",
					zap.String("id", gen.ID), zap.Error(err))
			}
		}
		pending = pending[:0]
	}

	// drain empties whatever is already buffered before the final flush, so
	// records enqueued just ahead of shutdown are not lost.
	drain := func() {
		for {
			select {
			case gen := <-r.genChan:
				pending = append(pending, gen)
			default:
				flush()
				return
			}
		}
	}

	for {
		select {
		case gen := <-r.genChan:
			pending = append(pending, gen)
			if len(pending) >= cap(pending) {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-r.quit:
			drain()
			return
		case <-ctx.Done():
			drain()
			return
		}
	}
}

// SyncRecorder writes records inline. Used by tests and by callers that
// need the record persisted before returning.
type SyncRecorder struct {
	Repo store.Repository
}

func (s *SyncRecorder) Record(gen *model.RecipeGeneration) {
	_ = s.Repo.Generations().Create(context.Background(), gen)
}

func (s *SyncRecorder) Start(ctx context.Context) {}
func (s *SyncRecorder) Stop()                     {}
