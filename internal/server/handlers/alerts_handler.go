package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fridgeagent/internal/service/alerts"
)

// AlertsHandler serves the derived alerts view.
type AlertsHandler struct {
	svc    *alerts.Service
	logger *zap.Logger
}

// NewAlertsHandler constructs the HTTP handler adapter.
func NewAlertsHandler(svc *alerts.Service, logger *zap.Logger) *AlertsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertsHandler{svc: svc, logger: logger}
}

// List classifies the current inventory snapshot. Pass enrich=true to run
// best-effort AI enrichment over the results.
func (h *AlertsHandler) List(c *gin.Context) {
	enrich := c.Query("enrich") == "true"

	found, err := h.svc.Snapshot(c.Request.Context(), enrich)
	if err != nil {
		h.logger.Error("failed generating alerts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate alerts"})
		return
	}

	c.JSON(http.StatusOK, found)
}
