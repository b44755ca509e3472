// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcbeam_test

import (
	"testing"

	"github.com/abctools/abcc/internal/abcast"
	"github.com/abctools/abcc/internal/abcbeam"
	"github.com/abctools/abcc/internal/abclex"
	"github.com/abctools/abcc/internal/abcparse"
	"github.com/abctools/abcc/internal/source"
)

func parseBody(t *testing.T, src string) (*abcast.FileStructure, *abcast.System, *source.Context) {
	t.Helper()
	ctx := source.New()
	tokens := abclex.Scan(ctx, []byte(src))
	fs := abcparse.Parse(ctx, tokens)
	for _, item := range fs.Items {
		if item.Tune != nil && item.Tune.Body != nil && len(item.Tune.Body.Systems) > 0 {
			return fs, item.Tune.Body.Systems[0], ctx
		}
	}
	t.Fatal("no system parsed")
	return nil, nil, nil
}

// countMusic counts leaf music elements, looking through Beam wrappers.
func countMusic(sys *abcast.System) int {
	n := 0
	for _, item := range sys.Items {
		switch m := item.Music.(type) {
		case nil:
		case *abcast.Beam:
			n += len(m.Children)
		default:
			n++
		}
	}
	return n
}

func beamsOf(sys *abcast.System) []*abcast.Beam {
	var out []*abcast.Beam
	for _, item := range sys.Items {
		if b, ok := item.Music.(*abcast.Beam); ok {
			out = append(out, b)
		}
	}
	return out
}

func TestGroupPreservesEveryElement(t *testing.T) {
	fs, sys, ctx := parseBody(t, "X:1\nK:C\nCDEF GABc|z2 [CE]2|\n")
	before := countMusic(sys)
	abcbeam.Group(ctx, fs)
	after := countMusic(sys)
	if before != after {
		t.Fatalf("element count changed: %d before, %d after", before, after)
	}
}

func TestWhitespaceBreaksBeam(t *testing.T) {
	fs, sys, ctx := parseBody(t, "X:1\nK:C\nCD EF|\n")
	abcbeam.Group(ctx, fs)
	beams := beamsOf(sys)
	if len(beams) != 2 {
		t.Fatalf("got %d beams, want 2", len(beams))
	}
	for i, b := range beams {
		if len(b.Children) != 2 {
			t.Errorf("beam %d has %d children, want 2", i, len(b.Children))
		}
	}
}

func TestBarlineBreaksBeam(t *testing.T) {
	fs, sys, ctx := parseBody(t, "X:1\nK:C\nCD|EF|\n")
	abcbeam.Group(ctx, fs)
	var sawBarInsideBeam bool
	for _, b := range beamsOf(sys) {
		for _, c := range b.Children {
			if _, ok := c.(*abcast.BarLine); ok {
				sawBarInsideBeam = true
			}
		}
	}
	if sawBarInsideBeam {
		t.Error("a bar line ended up inside a beam")
	}
	if got := len(beamsOf(sys)); got != 2 {
		t.Errorf("got %d beams, want 2", got)
	}
}

func TestSingleElementIsNotWrapped(t *testing.T) {
	fs, sys, ctx := parseBody(t, "X:1\nK:C\nC D E|\n")
	abcbeam.Group(ctx, fs)
	if got := len(beamsOf(sys)); got != 0 {
		t.Errorf("got %d beams, want 0 (isolated notes stay inline)", got)
	}
	var notes int
	for _, item := range sys.Items {
		if _, ok := item.Music.(*abcast.Note); ok {
			notes++
		}
	}
	if notes != 3 {
		t.Errorf("got %d inline notes, want 3", notes)
	}
}

func TestTieDoesNotBreakBeam(t *testing.T) {
	fs, sys, ctx := parseBody(t, "X:1\nK:C\nC-DEF|\n")
	abcbeam.Group(ctx, fs)
	beams := beamsOf(sys)
	if len(beams) != 1 {
		t.Fatalf("got %d beams, want 1", len(beams))
	}
	if len(beams[0].Children) != 4 {
		t.Errorf("got %d beamed children, want 4 (the tie is inside the first note)", len(beams[0].Children))
	}
}

func TestGraceAndDecorationAreBeamable(t *testing.T) {
	fs, sys, ctx := parseBody(t, "X:1\nK:C\n{AB}.CD|\n")
	abcbeam.Group(ctx, fs)
	beams := beamsOf(sys)
	if len(beams) != 1 {
		t.Fatalf("got %d beams, want 1", len(beams))
	}
	if len(beams[0].Children) != 4 {
		t.Errorf("got %d beamed children, want 4 (grace group, decoration, two notes)", len(beams[0].Children))
	}
}

func TestBeamsContainOnlyBeamables(t *testing.T) {
	fs, sys, ctx := parseBody(t, "X:1\nK:C\nCD[M:3/4]EF|y z2|\n")
	abcbeam.Group(ctx, fs)
	for _, b := range beamsOf(sys) {
		for _, c := range b.Children {
			switch c.(type) {
			case *abcast.Note, *abcast.Chord, *abcast.GraceGroup, *abcast.Tuplet,
				*abcast.Decoration, *abcast.Annotation, *abcast.Symbol, *abcast.YSpacer:
			default:
				t.Errorf("non-beamable %T inside a beam", c)
			}
		}
	}
}
