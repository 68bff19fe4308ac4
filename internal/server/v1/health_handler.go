package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/saucier/internal/orchestrator"
	"github.com/forkful/saucier/pkg/api"
)

type HealthHandler struct {
	orch    *orchestrator.Orchestrator
	version string
}

func NewHealthHandler(orch *orchestrator.Orchestrator, version string) *HealthHandler {
	return &HealthHandler{orch: orch, version: version}
}

// Health reports service liveness and LLM backend reachability.
//
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	available := h.orch.IsAvailable(c.Request.Context())

	status := "ok"
	if !available {
		status = "degraded"
	}

	c.JSON(http.StatusOK, api.HealthResponse{
		Status:  status,
		Model:   h.orch.ModelName(),
		Backend: available,
		Version: h.version,
	})
}
