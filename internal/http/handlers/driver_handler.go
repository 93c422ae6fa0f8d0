// README: Driver queue inspection.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drover/internal/modules/dispatch"
)

type DriverHandler struct {
	svc *dispatch.Service
}

func NewDriverHandler(svc *dispatch.Service) *DriverHandler {
	return &DriverHandler{svc: svc}
}

func (h *DriverHandler) Queue(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		writeError(c, http.StatusBadRequest, "missing driver name")
		return
	}
	queue, err := h.svc.DriverQueue(c.Request.Context(), name)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"driver": name, "jobs": toQueued(queue)})
}
