// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package abcsem implements the semantic analyzer. See types.go for the
// package doc.
package abcsem

import (
	"fmt"

	"github.com/abctools/abcc/internal/abcast"
	"github.com/abctools/abcc/internal/abctok"
	"github.com/abctools/abcc/internal/source"
)

// Analyzer is a stateless-except-for-context visitor over an abcast tree.
// It never mutates the tree; it only writes entries into its data map and
// reports diagnostics on ctx.
type Analyzer struct {
	ctx          *source.Context
	data         *SemanticDataMap
	inFileHeader bool
}

// Analyze walks fs and returns the semantic-data map. ctx must be the same
// Context used to build fs, so node ids line up.
func Analyze(ctx *source.Context, fs *abcast.FileStructure) *SemanticDataMap {
	a := &Analyzer{ctx: ctx, data: NewSemanticDataMap()}
	fs.Accept(a)
	return a.data
}

func (a *Analyzer) set(id uint32, d Data) { a.data.Set(id, d) }

func (a *Analyzer) report(tok abctok.Token, nodeID uint32, format string, args ...any) {
	if a.ctx == nil {
		return
	}
	id := nodeID
	a.ctx.Report(source.KindAnalyzer, fmt.Sprintf(format, args...), source.Position{
		Line: tok.Line, Column: tok.Column, Offset: tok.Offset,
	}, &id)
}

// ---- structural -------------------------------------------------------------

func (a *Analyzer) VisitFileStructure(n *abcast.FileStructure) any {
	if n.Header != nil {
		a.inFileHeader = true
		n.Header.Accept(a)
		a.inFileHeader = false
	}
	for _, item := range n.Items {
		if item.Tune != nil {
			item.Tune.Accept(a)
		}
	}
	return nil
}

func (a *Analyzer) VisitFileHeader(n *abcast.FileHeader) any {
	for _, item := range n.Items {
		a.visitHeaderItem(item)
	}
	return nil
}

func (a *Analyzer) visitHeaderItem(item abcast.HeaderItem) {
	switch {
	case item.InfoLine != nil:
		item.InfoLine.Accept(a)
	case item.Comment != nil:
		item.Comment.Accept(a)
	case item.Directive != nil:
		item.Directive.Accept(a)
	}
}

func (a *Analyzer) VisitTune(n *abcast.Tune) any {
	if n.Header != nil {
		n.Header.Accept(a)
	}
	if n.Body != nil {
		n.Body.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitTuneHeader(n *abcast.TuneHeader) any {
	for _, item := range n.Items {
		a.visitHeaderItem(item)
	}
	return nil
}

func (a *Analyzer) VisitTuneBody(n *abcast.TuneBody) any {
	for _, sys := range n.Systems {
		sys.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitSystem(n *abcast.System) any {
	for _, item := range n.Items {
		switch {
		case item.Music != nil:
			item.Music.Accept(a)
		case item.InfoLine != nil:
			item.InfoLine.Accept(a)
		case item.Comment != nil:
			item.Comment.Accept(a)
		}
	}
	return nil
}

func (a *Analyzer) VisitComment(n *abcast.Comment) any { return nil }

func (a *Analyzer) VisitLyricLine(n *abcast.LyricLine) any     { return nil }
func (a *Analyzer) VisitLyricSection(n *abcast.LyricSection) any {
	for _, l := range n.Lines {
		l.Accept(a)
	}
	return nil
}

// ---- musical atoms: traversal only, no semantic data at this layer --------

func (a *Analyzer) VisitPitch(n *abcast.Pitch) any { return nil }

func (a *Analyzer) VisitNote(n *abcast.Note) any {
	if n.Pitch != nil {
		n.Pitch.Accept(a)
	}
	if n.Rest != nil {
		n.Rest.Accept(a)
	}
	if n.Rhythm != nil {
		n.Rhythm.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitRest(n *abcast.Rest) any { return nil }

func (a *Analyzer) VisitMultiMeasureRest(n *abcast.MultiMeasureRest) any {
	if n.Count != nil {
		n.Count.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitRhythm(n *abcast.Rhythm) any { return nil }

func (a *Analyzer) VisitChord(n *abcast.Chord) any {
	for _, note := range n.Notes {
		note.Accept(a)
	}
	if n.Rhythm != nil {
		n.Rhythm.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitBarLine(n *abcast.BarLine) any { return nil }

func (a *Analyzer) VisitGraceGroup(n *abcast.GraceGroup) any {
	for _, note := range n.Notes {
		note.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitTuplet(n *abcast.Tuplet) any       { return nil }
func (a *Analyzer) VisitDecoration(n *abcast.Decoration) any { return nil }
func (a *Analyzer) VisitAnnotation(n *abcast.Annotation) any { return nil }
func (a *Analyzer) VisitSymbol(n *abcast.Symbol) any       { return nil }
func (a *Analyzer) VisitYSpacer(n *abcast.YSpacer) any     { return nil }

func (a *Analyzer) VisitInlineField(n *abcast.InlineField) any {
	if n.Field != nil {
		n.Field.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitVoiceOverlay(n *abcast.VoiceOverlay) any { return nil }

func (a *Analyzer) VisitBeam(n *abcast.Beam) any {
	for _, c := range n.Children {
		c.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitKV(n *abcast.KV) any {
	if n.Value != nil {
		n.Value.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitBinary(n *abcast.Binary) any {
	if n.Left != nil {
		n.Left.Accept(a)
	}
	if n.Right != nil {
		n.Right.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitGrouping(n *abcast.Grouping) any {
	if n.Inner != nil {
		n.Inner.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitRational(n *abcast.Rational) any         { return nil }
func (a *Analyzer) VisitMeasurement(n *abcast.Measurement) any   { return nil }
func (a *Analyzer) VisitAbsolutePitch(n *abcast.AbsolutePitch) any { return nil }

func (a *Analyzer) VisitErrorExpr(n *abcast.ErrorExpr) any { return nil }

func (a *Analyzer) VisitToken(t abctok.Token) any { return nil }

// ---- directives & info lines: the real semantic payload --------------------

// VisitDirective handles a "%%" directive. The scanner does not sub-tokenize
// directive bodies (scanDirectiveValue collects the whole remainder as one
// INFO_VALUE_TEXT token), so the analyzer recovers the directive name and
// its arguments by splitting that text on whitespace, the way info.go's
// doc comment describes.
func (a *Analyzer) VisitDirective(n *abcast.Directive) any {
	fields := splitFields(joinValues(n.Values))
	if len(fields) == 0 {
		a.report(n.Key, n.ID(), "empty stylesheet directive")
		return nil
	}
	name, args := fields[0], fields[1:]
	cat, ok := directiveTable[name]
	if !ok {
		a.report(n.Key, n.ID(), "unknown stylesheet directive %q", name)
		return nil
	}
	switch cat {
	case catFontBox:
		a.analyzeFont(n, name, args, true)
	case catFontNoBox:
		a.analyzeFont(n, name, args, false)
	case catBooleanFlag:
		a.analyzeBooleanFlag(n, name, args)
	case catIdentifier:
		a.analyzeIdentifier(n, name, args)
	case catBooleanValue:
		a.analyzeBooleanValue(n, name, args)
	case catNumberFree:
		a.analyzeNumber(n, name, args, nil)
	case catNumberConstrained:
		r := constrainedRanges[name]
		a.analyzeNumber(n, name, args, &r)
	case catPosition:
		a.analyzePosition(n, name, args)
	case catMeasurement:
		a.analyzeMeasurement(n, name, args)
	case catSep:
		a.analyzeSep(n, name, args)
	case catAnnotation:
		a.analyzeAnnotation(n, name, args)
	case catNewpage:
		a.analyzeNewpage(n, name, args)
	case catComplexTODO:
		a.report(n.Key, n.ID(), "%s: not implemented", name)
	}
	return nil
}

// splitFields splits on runs of spaces and tabs; the directive sub-scanner
// captures the whole body as one token, so both can appear inside it.
func splitFields(s string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' && s[i] != '\t' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	return out
}

func (a *Analyzer) VisitInfoLine(n *abcast.InfoLine) any {
	key := n.Key.Lexeme
	switch key {
	case "K:":
		if a.inFileHeader {
			a.report(n.Key, n.ID(), "K: not allowed in file header")
		}
		a.analyzeKey(n)
	case "M:":
		if a.inFileHeader {
			a.report(n.Key, n.ID(), "M: not allowed in file header")
		}
		a.analyzeMeter(n)
	case "L:":
		a.analyzeNoteLength(n)
	case "Q:":
		a.analyzeTempo(n)
	case "V:":
		a.analyzeVoice(n)
	case "T:":
		a.set(n.ID(), Data{Kind: KindTitleInfo, Title: joinValues(n.Values)})
	case "C:":
		a.set(n.ID(), Data{Kind: KindComposerInfo, Composer: joinValues(n.Values)})
	case "O:":
		a.set(n.ID(), Data{Kind: KindOriginInfo, Origin: joinValues(n.Values)})
	case "X:", "A:", "B:", "D:", "F:", "G:", "H:", "I:", "N:", "P:", "R:", "S:", "U:", "Z:":
		// recognized but carry no typed payload at this layer; the raw
		// token values remain available on the InfoLine itself.
	case "w:", "W:":
		// lyric lines are structurally distinct; nothing to analyze here.
	default:
		a.report(n.Key, n.ID(), "unknown info line key %q", key)
	}
	return nil
}

// nonWhitespace filters WHITESPACE tokens out of a raw value token slice.
func nonWhitespace(toks []abctok.Token) []abctok.Token {
	var out []abctok.Token
	for _, t := range toks {
		if t.Type != abctok.WHITESPACE {
			out = append(out, t)
		}
	}
	return out
}

func joinValues(toks []abctok.Token) string {
	var out []byte
	lastWasSpace := true
	for _, t := range toks {
		if t.Type == abctok.WHITESPACE {
			if !lastWasSpace {
				out = append(out, ' ')
				lastWasSpace = true
			}
			continue
		}
		out = append(out, t.Lexeme...)
		lastWasSpace = false
	}
	for len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return string(out)
}
