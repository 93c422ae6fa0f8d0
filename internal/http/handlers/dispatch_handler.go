// README: Admin triggers for clustering and assignment passes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drover/internal/modules/dispatch"
)

type DispatchHandler struct {
	svc *dispatch.Service
}

func NewDispatchHandler(svc *dispatch.Service) *DispatchHandler {
	return &DispatchHandler{svc: svc}
}

func (h *DispatchHandler) Cluster(c *gin.Context) {
	report, err := h.svc.RunClustering(c.Request.Context())
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, report)
}

func (h *DispatchHandler) Assign(c *gin.Context) {
	report, err := h.svc.RunAssignment(c.Request.Context())
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, report)
}
