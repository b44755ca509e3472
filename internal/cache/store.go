// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package cache implements an optional, file-backed memoization layer for
// the abcc CLI's directory-walking mode: given a source buffer's hash, it
// remembers whether that exact buffer compiled cleanly and, if not, the
// errors it produced, so repeated runs over an unchanged tree skip
// re-scanning/parsing/analyzing unchanged files. The schema is created
// from an embedded schema.sql on first open; an in-process LRU sits in
// front of the database so repeated compiles of the same buffer in one
// process never touch it at all.
//
// Core packages (internal/abc*, internal/abct*) never import this
// package; it is exercised only by cmd/abcc, keeping the compiler's core
// synchronous and dependency-light.
package cache

import (
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	"github.com/abctools/abcc/cerrs"
	"github.com/abctools/abcc/internal/source"
)

//go:embed schema.sql
var schemaDDL string

// Entry is what the cache remembers about one compiled source buffer.
type Entry struct {
	SourceLen  int
	ErrorCount int
	Errors     []source.Record
	CompiledAt int64 // unix seconds
}

// Store is a sqlite-backed cache of Entry, fronted by an in-process LRU.
// It is not safe for concurrent use by more than one goroutine, matching
// the rest of the compiler's single-threaded model.
type Store struct {
	path string
	db   *sql.DB
	lru  *lru.Cache[string, Entry]
}

// Hash returns the cache key for a source buffer.
func Hash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Open opens (creating if necessary) a cache database at path, with an
// in-process LRU of maxEntries in front of it.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	l, err := lru.New[string, Entry](maxEntries)
	if err != nil {
		return nil, err
	}
	isNew := true
	if sb, statErr := os.Stat(path); statErr == nil {
		if sb.IsDir() {
			return nil, cerrs.ErrCacheIsDirectory
		}
		isNew = false
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, statErr
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: enable foreign keys: %w", err)
	}
	if isNew {
		if _, err = db.Exec(schemaDDL); err != nil {
			_ = db.Close()
			return nil, errors.Join(cerrs.ErrCacheCreateSchema, err)
		}
	}
	return &Store{path: path, db: db, lru: l}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the remembered entry for hash, checking the in-process LRU
// before falling back to the database.
func (s *Store) Get(hash string) (Entry, bool, error) {
	if e, ok := s.lru.Get(hash); ok {
		return e, true, nil
	}
	row := s.db.QueryRow(`SELECT source_len, error_count, errors_json, compiled_at FROM compiles WHERE hash = ?`, hash)
	var e Entry
	var errorsJSON string
	if err := row.Scan(&e.SourceLen, &e.ErrorCount, &errorsJSON, &e.CompiledAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	if errorsJSON != "" {
		if err := json.Unmarshal([]byte(errorsJSON), &e.Errors); err != nil {
			return Entry{}, false, err
		}
	}
	s.lru.Add(hash, e)
	return e, true, nil
}

// Put records entry for hash, in both the LRU and the database.
func (s *Store) Put(hash string, e Entry) error {
	s.lru.Add(hash, e)
	errorsJSON, err := json.Marshal(e.Errors)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO compiles (hash, source_len, error_count, errors_json, compiled_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(hash) DO UPDATE SET
		   source_len = excluded.source_len,
		   error_count = excluded.error_count,
		   errors_json = excluded.errors_json,
		   compiled_at = excluded.compiled_at`,
		hash, e.SourceLen, e.ErrorCount, string(errorsJSON), e.CompiledAt,
	)
	return err
}

// Stat reports the entry count and on-disk size of the cache database.
func (s *Store) Stat() (entries int, sizeBytes int64, err error) {
	if err = s.db.QueryRow(`SELECT count(*) FROM compiles`).Scan(&entries); err != nil {
		return 0, 0, err
	}
	sb, statErr := os.Stat(s.path)
	if statErr != nil {
		return entries, 0, statErr
	}
	return entries, sb.Size(), nil
}
