package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS executions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id       TEXT NOT NULL,
	job_name     TEXT NOT NULL,
	success      INTEGER NOT NULL,
	error        TEXT,
	attempts     INTEGER NOT NULL,
	started_at   TEXT NOT NULL,
	completed_at TEXT NOT NULL,
	duration_ns  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_executions_job_name ON executions(job_name);
`

type sqliteRecorder struct {
	db *sql.DB
}

// OpenSQLite creates a durable recorder backed by a SQLite database at
// path. The schema is created if it does not exist.
func OpenSQLite(path string) (Recorder, error) {
	if path == "" {
		return nil, errors.New("history: sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")
	_, _ = db.Exec("PRAGMA busy_timeout = 5000")

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteRecorder{db: db}, nil
}

func (s *sqliteRecorder) Record(ctx context.Context, rec Record) error {
	success := 0
	if rec.Success {
		success = 1
	}
	var errText any
	if rec.Error != "" {
		errText = rec.Error
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO executions(job_id, job_name, success, error, attempts, started_at, completed_at, duration_ns)
		 VALUES(?,?,?,?,?,?,?,?)`,
		rec.JobID, rec.JobName, success, errText, rec.Attempts,
		rec.StartedAt.Format(time.RFC3339Nano), rec.CompletedAt.Format(time.RFC3339Nano),
		rec.Duration.Nanoseconds(),
	)
	return err
}

func (s *sqliteRecorder) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, job_name, success, error, attempts, started_at, completed_at, duration_ns
		 FROM executions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec        Record
			success    int
			errText    sql.NullString
			started    string
			completed  string
			durationNS int64
		)
		if err := rows.Scan(&rec.JobID, &rec.JobName, &success, &errText, &rec.Attempts, &started, &completed, &durationNS); err != nil {
			return nil, err
		}
		rec.Success = success == 1
		rec.Error = errText.String
		rec.Duration = time.Duration(durationNS)
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, err
		}
		if rec.CompletedAt, err = time.Parse(time.RFC3339Nano, completed); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *sqliteRecorder) Close() error {
	return s.db.Close()
}
