package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/audit"
	"github.com/forkful/saucier/internal/store/memory"
	"github.com/forkful/saucier/internal/store/model"
)

func TestRecorderPersistsAsync(t *testing.T) {
	repo := memory.New()
	rec := audit.NewRecorder(zap.NewNop(), repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	for i := 0; i < 3; i++ {
		rec.Record(&model.RecipeGeneration{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			Model:     "mistral",
			Status:    "SUCCESS",
			CreatedAt: time.Now(),
		})
	}
	rec.Stop()

	assert.Eventually(t, func() bool {
		gens, err := repo.Generations().ListByUser(context.Background(), "u1", 10)
		return err == nil && len(gens) == 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRecorderDrainsOnContextCancel(t *testing.T) {
	repo := memory.New()
	rec := audit.NewRecorder(zap.NewNop(), repo)

	ctx, cancel := context.WithCancel(context.Background())
	rec.Start(ctx)

	// Enqueued just ahead of cancellation; the worker drains before exit.
	rec.Record(&model.RecipeGeneration{ID: "g1", UserID: "u1", Status: "SUCCESS"})
	rec.Record(&model.RecipeGeneration{ID: "g2", UserID: "u1", Status: "ERROR"})
	cancel()

	assert.Eventually(t, func() bool {
		gens, err := repo.Generations().ListByUser(context.Background(), "u1", 10)
		return err == nil && len(gens) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRecorderRecordAfterStopDoesNotPanic(t *testing.T) {
	repo := memory.New()
	rec := audit.NewRecorder(zap.NewNop(), repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	rec.Stop()
	rec.Stop() // idempotent

	assert.NotPanics(t, func() {
		rec.Record(&model.RecipeGeneration{ID: "late", UserID: "u1", Status: "SUCCESS"})
	})
}

func TestSyncRecorderPersistsInline(t *testing.T) {
	repo := memory.New()
	rec := &audit.SyncRecorder{Repo: repo}

	rec.Record(&model.RecipeGeneration{ID: "g1", UserID: "u1", Status: "ERROR"})

	gens, err := repo.Generations().ListByUser(context.Background(), "u1", 10)
	assert.NoError(t, err)
	assert.Len(t, gens, 1)
	assert.Equal(t, "ERROR", gens[0].Status)
}
