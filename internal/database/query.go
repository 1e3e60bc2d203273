package database

import (
	"database/sql"
	"time"
)

// ActionStat aggregates sweep history per action
type ActionStat struct {
	Action string
	Count  int64
	Bytes  int64
}

// GetRecentSweeps returns the N most recent sweep records
func (d *SweepDB) GetRecentSweeps(limit int) ([]SweepRecord, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, object_type, size, error_message, created_at
	FROM sweeps
	ORDER BY timestamp DESC
	LIMIT ?
	`

	return d.querySweeps(query, limit)
}

// GetSweepsByAction returns records filtered by action (REMOVED, NOT_FOUND, ERROR)
func (d *SweepDB) GetSweepsByAction(action string) ([]SweepRecord, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, object_type, size, error_message, created_at
	FROM sweeps
	WHERE action = ?
	ORDER BY timestamp DESC
	`

	return d.querySweeps(query, action)
}

// GetSweepsByPath returns records whose path matches the given SQL LIKE pattern
func (d *SweepDB) GetSweepsByPath(pattern string) ([]SweepRecord, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, object_type, size, error_message, created_at
	FROM sweeps
	WHERE path LIKE ?
	ORDER BY timestamp DESC
	`

	return d.querySweeps(query, pattern)
}

// GetStats aggregates counts and bytes per action over the last N days
func (d *SweepDB) GetStats(days int) ([]ActionStat, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	query := `
	SELECT action, COUNT(*), COALESCE(SUM(size), 0)
	FROM sweeps
	WHERE timestamp >= ?
	GROUP BY action
	ORDER BY action
	`

	rows, err := d.db.Query(query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ActionStat
	for rows.Next() {
		var s ActionStat
		if err := rows.Scan(&s.Action, &s.Count, &s.Bytes); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (d *SweepDB) querySweeps(query string, args ...interface{}) ([]SweepRecord, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SweepRecord
	for rows.Next() {
		var r SweepRecord
		var errMsg sql.NullString
		if err := rows.Scan(
			&r.ID, &r.Timestamp, &r.Action, &r.Path, &r.FileName,
			&r.ObjectType, &r.Size, &errMsg, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		r.ErrorMessage = errMsg.String
		records = append(records, r)
	}
	return records, rows.Err()
}
