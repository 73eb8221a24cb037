package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Recker011/data-visualiser/internal/calculator"
	"github.com/Recker011/data-visualiser/internal/parser"
	"github.com/Recker011/data-visualiser/internal/process"
)

// LoadRequest optionally overrides the configured source URL for one load.
type LoadRequest struct {
	URL string `json:"url"`
}

// LoadResponse summarizes a completed load.
type LoadResponse struct {
	LoadID      string   `json:"loadId"`
	RowCount    int      `json:"rowCount"`
	JobCount    int      `json:"jobCount"`
	DroppedRows int      `json:"droppedRows"`
	Delimiter   string   `json:"delimiter"`
	Recovered   bool     `json:"recovered"`
	Warnings    []string `json:"warnings"`
}

// Load fetches the source export, runs the pipeline and swaps in the new
// dataset. Any failure leaves the previous dataset untouched and reports a
// single error; there are no partial results.
// POST /api/load
func (h *Handler) Load(c *gin.Context) {
	var req LoadRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	sourceURL := req.URL
	if sourceURL == "" {
		sourceURL = h.cfg.Source.URL
	}
	if sourceURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no source url configured"})
		return
	}

	loadID := uuid.New().String()
	logID, err := h.store.CreateLoadLog(loadID, sourceURL)
	if err != nil {
		// The audit trail must not block the load itself.
		log.Printf("create load log: %v", err)
	}

	text, err := h.fetcher.Fetch(c.Request.Context(), sourceURL)
	if err != nil {
		h.failLoad(logID, "", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch source data: " + err.Error()})
		return
	}

	rows, diags, err := parser.Parse(text)
	if err != nil {
		h.failLoad(logID, diags.Delimiter, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no parseable rows in source data"})
		return
	}

	res := process.Rows(rows)
	diags.Warnings = append(diags.Warnings, res.Warnings...)

	if len(res.Jobs) == 0 {
		h.failLoad(logID, diags.Delimiter, parser.ErrNoRows)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no usable job rows after processing"})
		return
	}

	metrics := calculator.New(res.Jobs).CalculateAll()

	h.setDataset(&Dataset{
		LoadID:      loadID,
		LoadedAt:    time.Now().UTC(),
		SourceURL:   sourceURL,
		Jobs:        res.Jobs,
		Diagnostics: *diags,
		DroppedRows: res.DroppedDates,
		Metrics:     metrics,
	})

	if logID > 0 {
		if err := h.store.CompleteLoadLog(logID, diags.Delimiter, diags.RowCount,
			len(res.Jobs), res.DroppedDates, len(diags.Warnings), diags.Recovered,
			"completed", ""); err != nil {
			log.Printf("complete load log: %v", err)
		}
	}

	c.JSON(http.StatusOK, LoadResponse{
		LoadID:      loadID,
		RowCount:    diags.RowCount,
		JobCount:    len(res.Jobs),
		DroppedRows: res.DroppedDates,
		Delimiter:   diags.Delimiter,
		Recovered:   diags.Recovered,
		Warnings:    diags.Warnings,
	})
}

func (h *Handler) failLoad(logID int64, delimiter string, cause error) {
	if logID <= 0 {
		return
	}
	if err := h.store.CompleteLoadLog(logID, delimiter, 0, 0, 0, 0, false, "failed", cause.Error()); err != nil {
		log.Printf("complete load log: %v", err)
	}
}
