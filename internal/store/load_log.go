package store

import (
	"fmt"
	"time"
)

// LoadLog is one recorded load attempt.
type LoadLog struct {
	ID           int64      `json:"id"`
	LoadID       string     `json:"loadId"`
	SourceURL    string     `json:"sourceUrl"`
	Delimiter    string     `json:"delimiter"`
	RowCount     int        `json:"rowCount"`
	JobCount     int        `json:"jobCount"`
	DroppedRows  int        `json:"droppedRows"`
	WarningCount int        `json:"warningCount"`
	Recovered    bool       `json:"recovered"`
	Status       string     `json:"status"` // processing/completed/failed
	ErrorMessage string     `json:"errorMessage,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// CreateLoadLog records the start of a load and returns the row id.
func (s *Store) CreateLoadLog(loadID, sourceURL string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO load_logs (load_id, source_url, status)
		VALUES (?, ?, 'processing')
	`, loadID, sourceURL)
	if err != nil {
		return 0, fmt.Errorf("failed to create load log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get load log id: %w", err)
	}
	return id, nil
}

// CompleteLoadLog finalizes a load log entry.
func (s *Store) CompleteLoadLog(id int64, delimiter string, rowCount, jobCount, droppedRows, warningCount int, recovered bool, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE load_logs SET
			delimiter = ?,
			row_count = ?,
			job_count = ?,
			dropped_rows = ?,
			warning_count = ?,
			recovered = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, delimiter, rowCount, jobCount, droppedRows, warningCount, recovered, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update load log: %w", err)
	}
	return nil
}

// RecentLoadLogs returns the latest load attempts, newest first.
func (s *Store) RecentLoadLogs(limit int) ([]LoadLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, load_id, source_url, delimiter, row_count, job_count,
		       dropped_rows, warning_count, recovered, status, error_message,
		       started_at, completed_at
		FROM load_logs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query load logs: %w", err)
	}
	defer rows.Close()

	var logs []LoadLog
	for rows.Next() {
		var l LoadLog
		var completedAt *time.Time
		if err := rows.Scan(&l.ID, &l.LoadID, &l.SourceURL, &l.Delimiter,
			&l.RowCount, &l.JobCount, &l.DroppedRows, &l.WarningCount,
			&l.Recovered, &l.Status, &l.ErrorMessage,
			&l.StartedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan load log: %w", err)
		}
		l.CompletedAt = completedAt
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
