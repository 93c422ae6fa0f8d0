// README: Batch postcode lookup populating the shared cache.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drover/internal/modules/dispatch"
)

type LocationHandler struct {
	svc *dispatch.Service
}

func NewLocationHandler(svc *dispatch.Service) *LocationHandler {
	return &LocationHandler{svc: svc}
}

type lookupRequest struct {
	Postcodes []string `json:"postcodes"`
}

func (h *LocationHandler) Lookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Postcodes) == 0 {
		writeError(c, http.StatusBadRequest, "missing postcodes")
		return
	}
	resolved, err := h.svc.LookupPostcodes(c.Request.Context(), req.Postcodes)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"resolved": resolved})
}
