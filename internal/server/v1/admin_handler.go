package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/saucier/internal/orchestrator"
	"github.com/forkful/saucier/pkg/api"
)

type AdminHandler struct {
	orch *orchestrator.Orchestrator
}

func NewAdminHandler(orch *orchestrator.Orchestrator) *AdminHandler {
	return &AdminHandler{orch: orch}
}

// CacheStats reports generation cache counts and hit rate.
//
// GET /v1/admin/cache/stats
func (h *AdminHandler) CacheStats(c *gin.Context) {
	stats, err := h.orch.CacheStats(c.Request.Context())
	if err != nil {
		_ = c.Error(api.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, api.CacheStatsResponse{
		ValidEntries: stats.ValidEntries,
		TotalEntries: stats.TotalEntries,
		HitRate:      stats.HitRate(),
	})
}

// CleanupCache deletes expired cache entries.
//
// POST /v1/admin/cache/cleanup
func (h *AdminHandler) CleanupCache(c *gin.Context) {
	deleted, err := h.orch.CleanupCache(c.Request.Context())
	if err != nil {
		_ = c.Error(api.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, api.CleanupResponse{Deleted: deleted})
}
