// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abclex_test

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abctools/abcc/internal/abclex"
	"github.com/abctools/abcc/internal/abctok"
	"github.com/abctools/abcc/internal/source"
)

// go test ./internal/abclex -run TestScan_Golden -update
var update = flag.Bool("update", false, "update golden files")

// tokenSnap is the stable, position-bearing view of a token that the
// golden files record. Offsets and ids are omitted: offsets follow from
// line/column plus the lexemes, and ids depend only on scan order.
type tokenSnap struct {
	Type   string `json:"type"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func snapshot(tokens []abctok.Token) []tokenSnap {
	var out []tokenSnap
	for _, t := range tokens {
		if t.Type == abctok.EOF {
			continue
		}
		out = append(out, tokenSnap{
			Type:   t.Type.String(),
			Lexeme: t.Lexeme,
			Line:   t.Line,
			Column: t.Column,
		})
	}
	return out
}

func TestScan_Golden(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{
			name:  "header_and_notes",
			input: "X:1\nK:C\nCD|\n",
		},
		{
			name:  "meter_and_rhythm",
			input: "X:1\nM:6/8\nK:C\nA2 z|\n",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tokens := abclex.Scan(source.New(), []byte(tc.input))
			gotJSON := mustJSON(t, snapshot(tokens))

			goldenPath := filepath.Join("testdata", "golden", sanitize(tc.name)+".golden.json")
			if *update {
				mustWriteFile(t, goldenPath, gotJSON)
			}

			wantJSON := mustReadFile(t, goldenPath)
			if !bytes.Equal(bytes.TrimSpace(gotJSON), bytes.TrimSpace(wantJSON)) {
				t.Fatalf("token snapshot mismatch for %s\nGOT:\n%s\n\nWANT:\n%s",
					tc.name, gotJSON, wantJSON)
			}
		})
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return append(buf, '\n')
}

func mustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v\nTip: run with -update to create golden.", path, err)
	}
	return b
}

func mustWriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func sanitize(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
