package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse reports whether a dataset is loaded and its headline
// numbers.
type StatusResponse struct {
	Initialized bool   `json:"initialized"`
	LoadID      string `json:"loadId,omitempty"`
	LoadedAt    string `json:"loadedAt,omitempty"`
	JobCount    int    `json:"jobCount"`
	RowCount    int    `json:"rowCount"`
	DroppedRows int    `json:"droppedRows"`
	Delimiter   string `json:"delimiter,omitempty"`
}

// GetStatus reports the current dataset state.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	d := h.dataset()
	if d == nil {
		c.JSON(http.StatusOK, StatusResponse{Initialized: false})
		return
	}
	c.JSON(http.StatusOK, StatusResponse{
		Initialized: true,
		LoadID:      d.LoadID,
		LoadedAt:    d.LoadedAt.Format("2006-01-02T15:04:05Z"),
		JobCount:    len(d.Jobs),
		RowCount:    d.Diagnostics.RowCount,
		DroppedRows: d.DroppedRows,
		Delimiter:   d.Diagnostics.Delimiter,
	})
}

// GetJobs returns the processed job sequence.
// GET /api/jobs
func (h *Handler) GetJobs(c *gin.Context) {
	d := h.dataset()
	if d == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no data loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loadId": d.LoadID, "jobs": d.Jobs})
}

// GetMetrics returns every aggregate set for the current dataset.
// GET /api/metrics
func (h *Handler) GetMetrics(c *gin.Context) {
	d := h.dataset()
	if d == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no data loaded"})
		return
	}
	c.JSON(http.StatusOK, d.Metrics)
}

// GetDiagnostics returns the parse diagnostics of the current dataset.
// GET /api/diagnostics
func (h *Handler) GetDiagnostics(c *gin.Context) {
	d := h.dataset()
	if d == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no data loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loadId":      d.LoadID,
		"rowCount":    d.Diagnostics.RowCount,
		"delimiter":   d.Diagnostics.Delimiter,
		"recovered":   d.Diagnostics.Recovered,
		"droppedRows": d.DroppedRows,
		"warnings":    d.Diagnostics.Warnings,
	})
}

// ListLoads returns recent load-log entries, newest first.
// GET /api/loads
func (h *Handler) ListLoads(c *gin.Context) {
	logs, err := h.store.RecentLoadLogs(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loads": logs})
}
