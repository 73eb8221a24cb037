// Package api exposes the pipeline over HTTP. Handlers read a single
// atomically-swapped dataset; a failed load never replaces the previous
// good one.
package api

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Recker011/data-visualiser/internal/calculator"
	"github.com/Recker011/data-visualiser/internal/config"
	"github.com/Recker011/data-visualiser/internal/fetch"
	"github.com/Recker011/data-visualiser/internal/model"
	"github.com/Recker011/data-visualiser/internal/parser"
	"github.com/Recker011/data-visualiser/internal/store"
)

// Dataset is the outcome of one successful load: the processed jobs, the
// aggregates computed over them, and the parse diagnostics.
type Dataset struct {
	LoadID      string              `json:"loadId"`
	LoadedAt    time.Time           `json:"loadedAt"`
	SourceURL   string              `json:"sourceUrl"`
	Jobs        []model.Job         `json:"jobs"`
	Diagnostics parser.Diagnostics  `json:"diagnostics"`
	DroppedRows int                 `json:"droppedRows"`
	Metrics     *calculator.Metrics `json:"metrics"`
}

// Handler serves the pipeline API.
type Handler struct {
	cfg     *config.AppConfig
	store   *store.Store
	fetcher *fetch.Fetcher
	dataDir string

	mu      sync.RWMutex
	current *Dataset

	downloads *exportDownloadStore
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.AppConfig, st *store.Store, dataDir string) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     st,
		fetcher:   fetch.New(cfg.Timeout()),
		dataDir:   dataDir,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.POST("/load", h.Load)
	router.GET("/loads", h.ListLoads)

	router.GET("/jobs", h.GetJobs)
	router.GET("/metrics", h.GetMetrics)
	router.GET("/diagnostics", h.GetDiagnostics)

	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// dataset returns the current dataset, or nil before the first load.
func (h *Handler) dataset() *Dataset {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *Handler) setDataset(d *Dataset) {
	h.mu.Lock()
	h.current = d
	h.mu.Unlock()
}
