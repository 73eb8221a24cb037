package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "datavis.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadLog_Lifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	id, err := s.CreateLoadLog("load-1", "http://example.com/export.csv")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.CompleteLoadLog(id, ",", 40, 38, 2, 1, true, "completed", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}

	logs, err := s.RecentLoadLogs(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("want 1 log, got %d", len(logs))
	}
	l := logs[0]
	if l.LoadID != "load-1" || l.Status != "completed" {
		t.Fatalf("log = %+v", l)
	}
	if l.RowCount != 40 || l.JobCount != 38 || l.DroppedRows != 2 || l.WarningCount != 1 {
		t.Fatalf("counts = %+v", l)
	}
	if !l.Recovered {
		t.Fatalf("recovered flag lost")
	}
	if l.CompletedAt == nil {
		t.Fatalf("completed_at not set")
	}
}

func TestRecentLoadLogs_NewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	for _, loadID := range []string{"a", "b", "c"} {
		if _, err := s.CreateLoadLog(loadID, "http://example.com"); err != nil {
			t.Fatalf("create %s: %v", loadID, err)
		}
	}

	logs, err := s.RecentLoadLogs(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("limit not applied: %d", len(logs))
	}
	if logs[0].LoadID != "c" || logs[1].LoadID != "b" {
		t.Fatalf("ordering wrong: %v", logs)
	}
}
