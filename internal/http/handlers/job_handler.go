// README: Job completion trigger and journal inspection.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drover/internal/modules/dispatch"
	"drover/internal/modules/job"
	"drover/internal/types"
)

type JobHandler struct {
	svc *dispatch.Service
}

func NewJobHandler(svc *dispatch.Service) *JobHandler {
	return &JobHandler{svc: svc}
}

type completeRequest struct {
	Driver string `json:"driver"`
}

type completeResponse struct {
	Changed []queuedJob `json:"changed"`
}

type queuedJob struct {
	JobID   types.ID   `json:"job_id"`
	OrderNo int        `json:"order_no"`
	Status  job.Status `json:"job_status"`
	Active  bool       `json:"job_active"`
}

func (h *JobHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing job id")
		return
	}
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Driver == "" {
		writeError(c, http.StatusBadRequest, "missing driver")
		return
	}

	changed, err := h.svc.CompleteJob(c.Request.Context(), types.ID(id), req.Driver)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, completeResponse{Changed: toQueued(changed)})
}

func (h *JobHandler) Events(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing job id")
		return
	}
	events, err := h.svc.JobEvents(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"events": events})
}

func toQueued(jobs []*job.Job) []queuedJob {
	out := make([]queuedJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, queuedJob{
			JobID:   j.ID,
			OrderNo: j.OrderNo,
			Status:  j.Status,
			Active:  j.Active,
		})
	}
	return out
}
