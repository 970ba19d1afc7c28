package export

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS recovered_items (
	uuid TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	category TEXT NOT NULL,
	type_code TEXT NOT NULL,
	format TEXT NOT NULL,
	trashed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT,
	updated_at TEXT,
	plaintext TEXT,
	error TEXT
);
CREATE INDEX IF NOT EXISTS idx_recovered_title ON recovered_items(title);
`

// sqliteSink writes recovered items into a recovered_items table
type sqliteSink struct {
	db *sql.DB
}

// Ensure sqliteSink implements the ItemSink interface
var _ interfaces.ItemSink = (*sqliteSink)(nil)

// NewSQLite opens (or creates) the database at path and prepares its schema.
// Rows are upserted by UUID, so exporting twice into one file is idempotent.
func NewSQLite(path string) (interfaces.ItemSink, error) {
	// sqlite would create a missing file with the umask default mode
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQLite file: %w", err)
	}
	file.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &sqliteSink{db: db}, nil
}

// Write inserts a batch in one transaction
func (s *sqliteSink) Write(items []types.RecoveredItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO recovered_items
			(uuid, title, category, type_code, format, trashed, created_at, updated_at, plaintext, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			type_code = excluded.type_code,
			format = excluded.format,
			trashed = excluded.trashed,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			plaintext = excluded.plaintext,
			error = excluded.error`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		record := NewRecord(item)
		var plaintext, errText sql.NullString
		if item.Err != nil {
			errText = sql.NullString{String: record.Error, Valid: true}
		} else {
			plaintext = sql.NullString{String: compactPlaintext(item.Plaintext), Valid: true}
		}
		trashed := 0
		if record.Trashed {
			trashed = 1
		}

		if _, err := stmt.Exec(record.UUID, record.Title, record.Category, record.TypeCode, record.Format,
			trashed, nullable(record.CreatedAt), nullable(record.UpdatedAt), plaintext, errText); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", record.UUID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}
	return nil
}

// Close releases the database
func (s *sqliteSink) Close() error {
	return s.db.Close()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// compactPlaintext stores JSON payloads without insignificant whitespace
func compactPlaintext(plaintext []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, plaintext); err != nil {
		return string(plaintext)
	}
	return buf.String()
}
