// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/abctools/abcc/internal/cache"
	"github.com/abctools/abcc/internal/source"
)

func openStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"), 8)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHashIsStable(t *testing.T) {
	a := cache.Hash([]byte("X:1\nK:C\nCD|\n"))
	b := cache.Hash([]byte("X:1\nK:C\nCD|\n"))
	c := cache.Hash([]byte("X:1\nK:C\nCE|\n"))
	if a != b {
		t.Error("same buffer hashed differently")
	}
	if a == c {
		t.Error("different buffers share a hash")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openStore(t)
	buf := []byte("X:1\nK:C\nbad(\n")
	hash := cache.Hash(buf)

	entry := cache.Entry{
		SourceLen:  len(buf),
		ErrorCount: 1,
		Errors: []source.Record{{
			Kind:    source.KindParser,
			Message: "unexpected token",
			Pos:     source.Position{Line: 2, Column: 3, Offset: 10},
		}},
		CompiledAt: 1754000000,
	}
	if err := store.Put(hash, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get(hash)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.SourceLen != entry.SourceLen || got.ErrorCount != entry.ErrorCount {
		t.Errorf("got %#v, want %#v", got, entry)
	}
	if len(got.Errors) != 1 || got.Errors[0].Message != "unexpected token" {
		t.Errorf("errors = %#v", got.Errors)
	}
}

func TestGetMissIsNotAnError(t *testing.T) {
	store := openStore(t)
	_, ok, err := store.Get(cache.Hash([]byte("never stored")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected a miss")
	}
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	store := openStore(t)
	hash := cache.Hash([]byte("tune"))
	if err := store.Put(hash, cache.Entry{SourceLen: 4, ErrorCount: 3, CompiledAt: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(hash, cache.Entry{SourceLen: 4, ErrorCount: 0, CompiledAt: 2}); err != nil {
		t.Fatalf("Put (overwrite): %v", err)
	}
	got, ok, err := store.Get(hash)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.ErrorCount != 0 || got.CompiledAt != 2 {
		t.Errorf("got %#v, want the overwritten entry", got)
	}
}

func TestStatCountsEntries(t *testing.T) {
	store := openStore(t)
	for _, src := range []string{"a", "b", "c"} {
		if err := store.Put(cache.Hash([]byte(src)), cache.Entry{SourceLen: 1}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	entries, size, err := store.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if entries != 3 {
		t.Errorf("entries = %d, want 3", entries)
	}
	if size <= 0 {
		t.Errorf("size = %d, want > 0", size)
	}
}
