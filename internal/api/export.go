package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Recker011/data-visualiser/internal/exporter"
)

const exportDownloadTTL = 10 * time.Minute

// Export renders the current aggregates into an Excel workbook and returns
// a one-shot download token.
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	d := h.dataset()
	if d == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no data loaded"})
		return
	}

	f, err := exporter.New().Export(d.Metrics)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed: " + err.Error()})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("booking-report-%s.xlsx", uuid.New().String())
	filePath := filepath.Join(h.dataDir, "exports", filename)
	if err := f.SaveAs(filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save export: " + err.Error()})
		return
	}

	token := h.downloads.put(filePath, d.LoadID, exportDownloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport streams a previously generated workbook.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expired or unknown"})
		return
	}
	c.FileAttachment(item.filePath, "booking-report.xlsx")
}
