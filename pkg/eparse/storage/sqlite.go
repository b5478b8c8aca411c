// Package storage persists serialized table records in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// ErrTableNotFound is returned when a stored table id does not exist.
var ErrTableNotFound = errors.New("table not found")

// TableMeta identifies a stored table.
type TableMeta struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Sheet     string    `json:"sheet"`
	Name      string    `json:"name"`
	Anchor    string    `json:"anchor"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	CreatedAt time.Time `json:"created_at"`
}

// Store provides SQLite-backed storage for extracted tables.
type Store struct {
	db *sql.DB
}

// Open opens or creates a Store at path. Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tables (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		sheet TEXT NOT NULL,
		name TEXT,
		anchor TEXT NOT NULL,
		n_rows INTEGER NOT NULL,
		n_cols INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tables_source ON tables(source);

	CREATE TABLE IF NOT EXISTS cells (
		table_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		row_index INTEGER NOT NULL,
		col_index INTEGER NOT NULL,
		value TEXT,
		type TEXT NOT NULL,
		r_header TEXT,
		c_header TEXT,
		excel_rc TEXT,
		metadata TEXT,
		PRIMARY KEY (table_id, seq),
		FOREIGN KEY (table_id) REFERENCES tables(id) ON DELETE CASCADE
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTable stores records under a new table id and returns it.
// Record order is preserved.
func (s *Store) SaveTable(ctx context.Context, meta TableMeta, records []models.Record) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tables (id, source, sheet, name, anchor, n_rows, n_cols, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Source, meta.Sheet, meta.Name, meta.Anchor, meta.Rows, meta.Cols, meta.CreatedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cells (table_id, seq, row_index, col_index, value, type, r_header, c_header, excel_rc, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		metaJSON, err := json.Marshal(r.Meta)
		if err != nil {
			return "", fmt.Errorf("failed to marshal metadata: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			meta.ID, i, r.RowIndex, r.ColIndex,
			nullable(r.Value), r.Type, nullable(r.RowHeader), nullable(r.ColHeader), r.Ref,
			string(metaJSON),
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert cell %s: %w", r.Ref, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return meta.ID, nil
}

// Tables lists stored tables for source, oldest first. An empty source lists all.
func (s *Store) Tables(ctx context.Context, source string) ([]TableMeta, error) {
	query := `SELECT id, source, sheet, name, anchor, n_rows, n_cols, created_at FROM tables`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TableMeta
	for rows.Next() {
		var (
			m       TableMeta
			name    sql.NullString
			created int64
		)
		if err := rows.Scan(&m.ID, &m.Source, &m.Sheet, &name, &m.Anchor, &m.Rows, &m.Cols, &created); err != nil {
			return nil, err
		}
		m.Name = name.String
		m.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// Records returns the stored records of a table in their original order.
// Values are returned as stored text; empty cells are nil.
func (s *Store) Records(ctx context.Context, tableID string) ([]models.Record, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM tables WHERE id = ?`, tableID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_index, col_index, value, type, r_header, c_header, excel_rc, metadata
		 FROM cells WHERE table_id = ? ORDER BY seq`, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Record
	for rows.Next() {
		var (
			r                       models.Record
			value, rHeader, cHeader sql.NullString
			metaJSON                sql.NullString
		)
		if err := rows.Scan(&r.RowIndex, &r.ColIndex, &value, &r.Type, &rHeader, &cHeader, &r.Ref, &metaJSON); err != nil {
			return nil, err
		}
		r.Value, r.RowHeader, r.ColHeader = nullString(value), nullString(rHeader), nullString(cHeader)
		if metaJSON.Valid && metaJSON.String != "" && metaJSON.String != "null" {
			if err := json.Unmarshal([]byte(metaJSON.String), &r.Meta); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullable(v any) any {
	if models.IsEmpty(v) {
		return nil
	}
	return fmt.Sprint(v)
}

func nullString(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
