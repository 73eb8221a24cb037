package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Recker011/data-visualiser/internal/calculator"
	"github.com/Recker011/data-visualiser/internal/config"
	"github.com/Recker011/data-visualiser/internal/store"
)

func newTestRouter(t *testing.T, cfg *config.AppConfig) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	// Mirror config.EnsureDataDir, which guarantees the exports
	// subdirectory exists before the handler runs in production.
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		t.Fatalf("create exports dir: %v", err)
	}
	st, err := store.New(filepath.Join(dataDir, "datavis.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := NewHandler(cfg, st, dataDir)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r, h
}

func sourceServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func postLoad(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(LoadRequest{URL: url})
	req := httptest.NewRequest(http.MethodPost, "/api/load", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const sampleExport = `Date,Booking,Staff,Cost,Paid Hours
14/3/2025,Smith End of Lease,"Alice, Bob",$250.00 + GST,4H 3.5 hours
15/3/2025,Jones CANCELLED,Alice,200,
16/3/2025,West Deep Clean,Uppal/Dhruv,100,
TBC,Pending job,Cara,50,
`

func TestLoad_FullPipeline(t *testing.T) {
	src := sourceServer(t, sampleExport, http.StatusOK)
	r, h := newTestRouter(t, nil)

	w := postLoad(t, r, src.URL)
	if w.Code != http.StatusOK {
		t.Fatalf("load status = %d body=%s", w.Code, w.Body.String())
	}

	var resp LoadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RowCount != 4 {
		t.Fatalf("rowCount = %d, want 4", resp.RowCount)
	}
	if resp.JobCount != 3 {
		t.Fatalf("jobCount = %d, want 3 (undated row dropped)", resp.JobCount)
	}
	if resp.DroppedRows != 1 {
		t.Fatalf("droppedRows = %d, want 1", resp.DroppedRows)
	}
	if resp.Delimiter != "," {
		t.Fatalf("delimiter = %q", resp.Delimiter)
	}

	d := h.dataset()
	if d == nil || len(d.Jobs) != 3 {
		t.Fatalf("dataset not swapped in: %+v", d)
	}
	if d.Jobs[0].BookingName != "Smith End of Lease" || !d.Jobs[0].HasGST {
		t.Fatalf("first job = %+v", d.Jobs[0])
	}

	// Metrics reflect only the billable jobs (cancelled one excluded).
	var metrics calculator.Metrics
	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	mw := httptest.NewRecorder()
	r.ServeHTTP(mw, req)
	if mw.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", mw.Code)
	}
	if err := json.Unmarshal(mw.Body.Bytes(), &metrics); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if len(metrics.WeeklyRevenue) != 1 || metrics.WeeklyRevenue[0].Revenue != 350 {
		t.Fatalf("weekly revenue = %+v, want one week of 350", metrics.WeeklyRevenue)
	}
}

func TestLoad_TransportFailureKeepsOldDataset(t *testing.T) {
	good := sourceServer(t, sampleExport, http.StatusOK)
	bad := sourceServer(t, "gone", http.StatusInternalServerError)
	r, h := newTestRouter(t, nil)

	if w := postLoad(t, r, good.URL); w.Code != http.StatusOK {
		t.Fatalf("seed load failed: %d", w.Code)
	}
	before := h.dataset()

	w := postLoad(t, r, bad.URL)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("want 502 on transport failure, got %d", w.Code)
	}
	if h.dataset() != before {
		t.Fatalf("failed load must not replace the dataset")
	}
}

func TestLoad_ZeroRowsFails(t *testing.T) {
	src := sourceServer(t, "just one header line\n", http.StatusOK)
	r, h := newTestRouter(t, nil)

	w := postLoad(t, r, src.URL)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422 on zero rows, got %d body=%s", w.Code, w.Body.String())
	}
	if h.dataset() != nil {
		t.Fatalf("no dataset should exist after a failed first load")
	}
}

func TestLoad_NoURLConfigured(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := postLoad(t, r, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 without a source url, got %d", w.Code)
	}
}

func TestStatus_BeforeAndAfterLoad(t *testing.T) {
	src := sourceServer(t, sampleExport, http.StatusOK)
	r, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"initialized":false`) {
		t.Fatalf("pre-load status = %d %s", w.Code, w.Body.String())
	}

	if lw := postLoad(t, r, src.URL); lw.Code != http.StatusOK {
		t.Fatalf("load: %d", lw.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	var status StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Initialized || status.JobCount != 3 {
		t.Fatalf("post-load status = %+v", status)
	}
}

func TestLoadLog_RecordsOutcomes(t *testing.T) {
	src := sourceServer(t, sampleExport, http.StatusOK)
	r, h := newTestRouter(t, nil)

	if w := postLoad(t, r, src.URL); w.Code != http.StatusOK {
		t.Fatalf("load: %d", w.Code)
	}

	logs, err := h.store.RecentLoadLogs(5)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != "completed" {
		t.Fatalf("logs = %+v", logs)
	}
	if logs[0].JobCount != 3 || logs[0].DroppedRows != 1 {
		t.Fatalf("log counts = %+v", logs[0])
	}
}

func TestExport_TokenRoundTrip(t *testing.T) {
	src := sourceServer(t, sampleExport, http.StatusOK)
	r, _ := newTestRouter(t, nil)

	if w := postLoad(t, r, src.URL); w.Code != http.StatusOK {
		t.Fatalf("load: %d", w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token       string `json:"token"`
		DownloadURL string `json:"downloadUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("missing token")
	}

	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil))
	if dw.Code != http.StatusOK {
		t.Fatalf("download status = %d", dw.Code)
	}
	if cd := dw.Header().Get("Content-Disposition"); !strings.Contains(cd, "booking-report.xlsx") {
		t.Fatalf("content-disposition = %q", cd)
	}

	mw := httptest.NewRecorder()
	r.ServeHTTP(mw, httptest.NewRequest(http.MethodGet, "/api/export/download/bogus", nil))
	if mw.Code != http.StatusNotFound {
		t.Fatalf("bogus token status = %d", mw.Code)
	}
}

func TestQueryEndpoints_RequireData(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	for _, path := range []string{"/api/jobs", "/api/metrics", "/api/diagnostics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusConflict {
			t.Fatalf("%s: want 409 before any load, got %d", path, w.Code)
		}
	}
}
