// Package duckdb persists benchmark run results into a local DuckDB database,
// giving score regressions a queryable history.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id         VARCHAR NOT NULL,
	bench_id       VARCHAR NOT NULL,
	dataset        VARCHAR NOT NULL,
	iterations     BIGINT NOT NULL,
	duration_ns    BIGINT NOT NULL,
	crc            INTEGER NOT NULL,
	expected_crc   INTEGER NOT NULL,
	passed         BOOLEAN NOT NULL,
	created_at     TIMESTAMP NOT NULL
)`

// RunRecord is one row of benchmark history.
type RunRecord struct {
	RunID       string
	BenchID     string
	Dataset     string
	Iterations  uint64
	DurationNs  uint64
	CRC         uint16
	ExpectedCRC uint16
	Passed      bool
	CreatedAt   time.Time
}

type Writer struct {
	dataSourceName string
	db             *sql.DB
}

func NewWriter(dataSourceName string) *Writer {
	return &Writer{
		dataSourceName: dataSourceName,
	}
}

// Connect opens the database and makes sure the runs table exists.
func (w *Writer) Connect(ctx context.Context) error {
	db, err := sql.Open("duckdb", w.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return fmt.Errorf("error creating runs table: %w", err)
	}
	w.db = db
	return nil
}

func (w *Writer) Close() {
	_ = w.db.Close()
}

// InsertRun appends one result row.
func (w *Writer) InsertRun(ctx context.Context, rec RunRecord) error {
	const query = `INSERT INTO runs
		(run_id, bench_id, dataset, iterations, duration_ns, crc, expected_crc, passed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := w.db.ExecContext(ctx, query,
		rec.RunID, rec.BenchID, rec.Dataset,
		int64(rec.Iterations), int64(rec.DurationNs),
		int32(rec.CRC), int32(rec.ExpectedCRC),
		rec.Passed, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting run record: %w", err)
	}
	return nil
}
