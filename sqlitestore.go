package printdesk

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is a durable Store backed by a single SQLite file. The schema
// is one prints table keyed by record id; image bytes live inline as a BLOB.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS prints (
	id         TEXT PRIMARY KEY,
	owner      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	caption    TEXT NOT NULL DEFAULT '',
	filter     INTEGER NOT NULL,
	frame      INTEGER NOT NULL,
	source_ref TEXT NOT NULL DEFAULT '',
	image      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_prints_owner ON prints(owner, created_at);
`

// OpenSQLiteStore opens (or creates) the store at path and ensures the schema.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns the owner's prints, most recent first.
func (s *SQLiteStore) List(ownerID string) ([]PrintRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, caption, filter, frame, source_ref, image
		FROM prints WHERE owner = ?
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prints: %w", err)
	}
	defer rows.Close()

	var recs []PrintRecord
	for rows.Next() {
		var rec PrintRecord
		var filter, frame int
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Caption, &filter, &frame, &rec.SourceRef, &rec.Bytes); err != nil {
			return nil, fmt.Errorf("failed to scan print: %w", err)
		}
		rec.Filter = FilterVariant(filter)
		rec.Frame = FrameVariant(frame)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Keep persists rec. INSERT OR REPLACE makes re-keeping the same record a
// safe overwrite rather than a duplicate.
func (s *SQLiteStore) Keep(rec PrintRecord, ownerID string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO prints (id, owner, created_at, caption, filter, frame, source_ref, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, ownerID, rec.CreatedAt, rec.Caption, int(rec.Filter), int(rec.Frame), rec.SourceRef, rec.Bytes)
	if err != nil {
		return fmt.Errorf("failed to keep print %s: %w", rec.ID, err)
	}
	return nil
}

// Unkeep deletes the record with the given id. Deleting an unknown id
// affects zero rows and is not an error.
func (s *SQLiteStore) Unkeep(id, ownerID string) error {
	if _, err := s.db.Exec(`DELETE FROM prints WHERE id = ? AND owner = ?`, id, ownerID); err != nil {
		return fmt.Errorf("failed to unkeep print %s: %w", id, err)
	}
	return nil
}
