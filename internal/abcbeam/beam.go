// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package abcbeam implements the beam-grouping post-pass: a scan over each
// parsed system's element list that contracts contiguous runs of beamable
// elements into Beam nodes, the way a pretty-printer's line-breaking pass
// walks a finished list rather than reshaping the parser's grammar.
package abcbeam

import (
	"github.com/abctools/abcc/internal/abcast"
	"github.com/abctools/abcc/internal/source"
)

// Group rewrites every system in every tune body of fs in place, replacing
// contiguous runs of two or more beamable elements with a single Beam node.
// It never drops or duplicates an element: every child present before
// grouping is reachable afterward, either directly or inside a Beam.
func Group(ctx *source.Context, fs *abcast.FileStructure) {
	for _, item := range fs.Items {
		if item.Tune != nil {
			groupTune(ctx, item.Tune)
		}
	}
}

func groupTune(ctx *source.Context, tune *abcast.Tune) {
	if tune.Body == nil {
		return
	}
	for _, sys := range tune.Body.Systems {
		groupSystem(ctx, sys)
	}
}

func groupSystem(ctx *source.Context, sys *abcast.System) {
	var out []abcast.SystemItem
	var buf []abcast.Expr

	flush := func() {
		switch len(buf) {
		case 0:
			// nothing buffered
		case 1:
			out = append(out, abcast.SystemItem{Music: buf[0]})
		default:
			beam := abcast.NewBeam(nextID(ctx))
			beam.Children = append([]abcast.Expr(nil), buf...)
			out = append(out, abcast.SystemItem{Music: beam})
		}
		buf = buf[:0]
	}

	for _, item := range sys.Items {
		if item.Boundary {
			// A whitespace gap always breaks a beam; the boundary marker
			// itself carries nothing forward, so it is not re-emitted.
			flush()
			continue
		}
		if item.Music == nil {
			// InfoLine or Comment interleaved in the system: these are not
			// beamable and also not reachable as plain tokens, so they
			// terminate any run in progress.
			flush()
			out = append(out, item)
			continue
		}
		if beamable(item.Music) {
			buf = append(buf, item.Music)
			continue
		}
		flush()
		out = append(out, item)
	}
	flush()
	sys.Items = out
}

// beamable reports whether a parsed music element may participate in a
// beam. Bar lines, inline fields, and voice overlays break beams; ties do
// not (they are captured inside Note/Chord and never appear as siblings).
func beamable(e abcast.Expr) bool {
	switch e.(type) {
	case *abcast.Note, *abcast.Chord, *abcast.GraceGroup, *abcast.Tuplet,
		*abcast.Decoration, *abcast.Annotation, *abcast.Symbol, *abcast.YSpacer:
		return true
	default:
		return false
	}
}

func nextID(ctx *source.Context) uint32 {
	if ctx == nil {
		return 0
	}
	return ctx.NextID()
}
