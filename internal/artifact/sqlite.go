// Package artifact provides a sqlite-backed artifact store so generated
// reports survive process restarts.
package artifact

import (
	"database/sql"
	"fmt"
	"time"

	meshartifact "github.com/hupe1980/agentmesh/artifact"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// SQLiteStore persists artifacts in a sqlite database, scoped by session.
// It implements agentmesh's core.ArtifactStore.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Options configures a SQLiteStore.
type Options struct {
	Logger zerolog.Logger
}

// NewSQLiteStore opens (or creates) the database at path and prepares the
// artifact schema.
func NewSQLiteStore(path string, optFns ...func(o *Options)) (*SQLiteStore, error) {
	opts := Options{Logger: zerolog.Nop()}
	for _, fn := range optFns {
		fn(&opts)
	}

	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS artifacts (
			session_id  TEXT NOT NULL,
			artifact_id TEXT NOT NULL,
			data        BLOB NOT NULL,
			updated_at  INTEGER NOT NULL,
			PRIMARY KEY (session_id, artifact_id)
		);
		CREATE INDEX IF NOT EXISTS idx_artifacts_session ON artifacts(session_id);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, logger: opts.Logger}, nil
}

// Save stores or overwrites the artifact bytes for a session and id.
func (s *SQLiteStore) Save(sessionID, artifactID string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO artifacts (session_id, artifact_id, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, artifact_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, sessionID, artifactID, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", artifactID, err)
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("artifact_id", artifactID).
		Int("bytes", len(data)).
		Msg("artifact saved")

	return nil
}

// Get returns the stored artifact bytes.
func (s *SQLiteStore) Get(sessionID, artifactID string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(
		"SELECT data FROM artifacts WHERE session_id = ? AND artifact_id = ?",
		sessionID, artifactID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, meshartifact.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", artifactID, err)
	}
	return data, nil
}

// List returns the artifact ids stored for a session, oldest first.
func (s *SQLiteStore) List(sessionID string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT artifact_id FROM artifacts WHERE session_id = ? ORDER BY updated_at, artifact_id",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan artifact id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	return ids, nil
}

// Delete removes an artifact if present.
func (s *SQLiteStore) Delete(sessionID, artifactID string) error {
	res, err := s.db.Exec(
		"DELETE FROM artifacts WHERE session_id = ? AND artifact_id = ?",
		sessionID, artifactID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete artifact %s: %w", artifactID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return meshartifact.ErrNotFound
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
