// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists fetched metadata in a SQLite database keyed by DOI.
//
// The TTL is sliding: every read refreshes the access timestamp, so records
// in active use stay warm while abandoned ones age out. Expiry is enforced
// lazily on read; ClearExpired exists for explicit housekeeping.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// timeNow is swapped out by tests to control TTL expiry.
var timeNow = time.Now

// Store is the metadata cache. All failures short of opening the database
// are soft: a broken cache degrades to a miss, never to a pipeline error.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int       `json:"entries"`
	Expired int       `json:"expired"`
	Oldest  time.Time `json:"oldest,omitempty"`
}

// Open opens or creates the cache database at cfg.Path.
func Open(cfg types.CacheConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, ttl: cfg.TTL}
	if s.ttl <= 0 {
		s.ttl = 7 * 24 * time.Hour
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		doi TEXT PRIMARY KEY,
		metadata TEXT NOT NULL,
		created_at TEXT NOT NULL,
		accessed_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the cached metadata for a DOI, or (nil, false) on a miss.
// A hit refreshes the access timestamp; an entry whose last access is older
// than the TTL is deleted and reported as a miss.
func (s *Store) Get(doi string) (*types.Metadata, bool) {
	var payload, accessedAt string
	err := s.db.QueryRow(
		`SELECT metadata, accessed_at FROM entries WHERE doi = ?`, doi,
	).Scan(&payload, &accessedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).WithField("doi", doi).Warn("cache read failed")
		return nil, false
	}

	accessed, err := time.Parse(time.RFC3339Nano, accessedAt)
	if err != nil || timeNow().Sub(accessed) > s.ttl {
		if _, derr := s.db.Exec(`DELETE FROM entries WHERE doi = ?`, doi); derr != nil {
			logrus.WithError(derr).WithField("doi", doi).Warn("cache expiry delete failed")
		}
		return nil, false
	}

	var md types.Metadata
	if err := json.Unmarshal([]byte(payload), &md); err != nil {
		logrus.WithError(err).WithField("doi", doi).Warn("cache entry corrupt, dropping")
		s.db.Exec(`DELETE FROM entries WHERE doi = ?`, doi)
		return nil, false
	}

	if _, err := s.db.Exec(
		`UPDATE entries SET accessed_at = ? WHERE doi = ?`,
		timeNow().Format(time.RFC3339Nano), doi,
	); err != nil {
		logrus.WithError(err).WithField("doi", doi).Warn("cache touch failed")
	}
	return &md, true
}

// Set stores metadata under a DOI, replacing any existing entry. The
// original created_at survives an overwrite; only the access time resets.
func (s *Store) Set(doi string, md *types.Metadata) {
	payload, err := json.Marshal(md)
	if err != nil {
		logrus.WithError(err).WithField("doi", doi).Warn("cache marshal failed")
		return
	}

	now := timeNow().Format(time.RFC3339Nano)
	_, err = s.db.Exec(
		`INSERT INTO entries (doi, metadata, created_at, accessed_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(doi) DO UPDATE SET metadata = excluded.metadata,
		   accessed_at = excluded.accessed_at`,
		doi, string(payload), now, now,
	)
	if err != nil {
		logrus.WithError(err).WithField("doi", doi).Warn("cache write failed")
	}
}

// ClearExpired removes every entry whose last access is older than the TTL
// and returns the number removed.
func (s *Store) ClearExpired() (int, error) {
	cutoff := timeNow().Add(-s.ttl).Format(time.RFC3339Nano)
	res, err := s.db.Exec(`DELETE FROM entries WHERE accessed_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("clearing expired entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Clear removes every entry.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM entries`)
	return err
}

// Summary reports entry counts and the age of the oldest record.
func (s *Store) Summary() (Stats, error) {
	var st Stats
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&st.Entries); err != nil {
		return st, fmt.Errorf("counting cache entries: %w", err)
	}

	cutoff := timeNow().Add(-s.ttl).Format(time.RFC3339Nano)
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM entries WHERE accessed_at < ?`, cutoff,
	).Scan(&st.Expired); err != nil {
		return st, fmt.Errorf("counting expired entries: %w", err)
	}

	var oldest sql.NullString
	if err := s.db.QueryRow(`SELECT MIN(created_at) FROM entries`).Scan(&oldest); err != nil {
		return st, fmt.Errorf("finding oldest entry: %w", err)
	}
	if oldest.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, oldest.String); err == nil {
			st.Oldest = ts
		}
	}
	return st, nil
}
