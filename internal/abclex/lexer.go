// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package abclex implements the ABC scanner described by the compiler's
// specification: a function-composition tokenizer. Each primitive
// inspects the remaining input, and either matches (pushing one or more
// tokens and advancing the cursor) and returns true, or leaves the cursor
// untouched and returns false. The driver loop tries primitives in
// precedence order and falls back to an invalid-character collector.
package abclex

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abctools/abcc/internal/abctok"
	"github.com/abctools/abcc/internal/source"
)

// mode tracks which micro-grammar the driver is currently inside.
type mode int

const (
	modeNormal mode = iota
	modeInfo        // inside an info-line's value, dispatched by field kind
	modeDirective   // inside a "%%directive" line
)

// Scanner tokenizes ABC source text.
type Scanner struct {
	ctx   *source.Context
	input []byte

	pos  int // byte offset of the next unread byte
	line int // 0-based
	col  int // 0-based

	tokens []abctok.Token

	mode        mode
	infoKind    string // lexeme of the info key driving the current sub-scan, e.g. "K:"
	inlineField bool   // true if the current info scan was opened by "[" mid-line

	// per-field sub-scanner state, reset whenever infoKind changes
	lastWasNoteLenSep bool // L: seen a "/" since the last digit run
	seenVoiceID       bool // V: consumed the voice identifier already

	atLineStart bool

	startLine, startCol, startOffset int
}

// New returns a scanner over input, using ctx to mint token ids and report
// scanner-level diagnostics.
func New(ctx *source.Context, input []byte) *Scanner {
	return &Scanner{
		ctx:         ctx,
		input:       input,
		atLineStart: true,
	}
}

// Scan runs the scanner to completion and returns the ordered token
// vector, always terminated by a single EOF token. Scan never panics;
// unrecognized input is reported and collected into INVALID tokens.
func Scan(ctx *source.Context, input []byte) []abctok.Token {
	s := New(ctx, input)
	return s.Run()
}

// Run is the driver loop.
func (s *Scanner) Run() []abctok.Token {
	for s.pos < len(s.input) {
		if s.tryPrimitives() {
			continue
		}
		if s.mode == modeInfo || s.mode == modeDirective {
			s.scanInvalidInfo()
		} else {
			s.scanInvalid()
		}
	}
	s.mark()
	s.push(abctok.EOF, "")
	return s.tokens
}

// tryPrimitives tries every primitive in precedence order, returning true
// on the first one that consumes input.
func (s *Scanner) tryPrimitives() bool {
	if s.mode == modeInfo || s.mode == modeDirective {
		if s.tryEOL() {
			return true
		}
		return s.tryInfoField()
	}
	switch {
	case s.tryEOL():
		return true
	case s.tryWhitespace():
		return true
	case s.tryDirectiveMarker():
		return true
	case s.tryComment():
		return true
	case s.tryInfoKey():
		return true
	case s.tryInlineField():
		return true
	case s.tryBarline():
		return true
	case s.tryTupletParen():
		return true
	case s.tryRhythm():
		return true
	case s.tryAccidental():
		return true
	case s.tryOctave():
		return true
	case s.tryComma():
		return true
	case s.tryTie():
		return true
	case s.tryNoteOrRest():
		return true
	case s.tryChordDelims():
		return true
	case s.tryGraceDelims():
		return true
	case s.tryDecoration():
		return true
	case s.tryAnnotationOrString():
		return true
	case s.tryYSpacer():
		return true
	case s.tryVoiceOverlay():
		return true
	case s.trySymbol():
		return true
	default:
		return false
	}
}

// ---- cursor primitives -------------------------------------------------

func (s *Scanner) current() rune {
	if s.pos >= len(s.input) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.input[s.pos:])
	return r
}

func (s *Scanner) peekAt(off int) rune {
	p := s.pos + off
	if p < 0 || p >= len(s.input) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.input[p:])
	return r
}

func (s *Scanner) advance() {
	if s.pos >= len(s.input) {
		return
	}
	r, w := utf8.DecodeRune(s.input[s.pos:])
	s.pos += w
	if r == '\n' {
		s.line++
		s.col = 0
		s.atLineStart = true
	} else {
		s.col++
		s.atLineStart = false
	}
}

func (s *Scanner) hasPrefix(p string) bool {
	return strings.HasPrefix(string(s.input[s.pos:]), p)
}

// mark records the current cursor position as the start of the next token.
func (s *Scanner) mark() {
	s.startLine, s.startCol, s.startOffset = s.line, s.col, s.pos
}

// push emits a token whose Lexeme is the given string, positioned at the
// most recent mark(). Use this when the caller advanced the cursor itself
// (e.g. a multi-rune match) and already knows the exact lexeme.
func (s *Scanner) push(typ abctok.Type, lexeme string) {
	id := uint32(0)
	if s.ctx != nil {
		id = s.ctx.NextID()
	}
	s.tokens = append(s.tokens, abctok.Token{
		Type:   typ,
		Lexeme: lexeme,
		Line:   s.startLine,
		Column: s.startCol,
		Offset: s.startOffset,
		Id:     id,
	})
}

// emit marks the start, advances the cursor by n bytes, and pushes a
// token covering exactly that span.
func (s *Scanner) emit(typ abctok.Type, n int) {
	s.mark()
	end := s.pos + n
	if end > len(s.input) {
		end = len(s.input)
	}
	lexeme := string(s.input[s.pos:end])
	for s.pos < end {
		s.advance()
	}
	s.push(typ, lexeme)
}

// emitRun marks the start, then advances the cursor one rune at a time
// while pred() holds, and pushes the accumulated span as one token (an
// empty one if pred() is false at the start).
func (s *Scanner) emitRun(typ abctok.Type, pred func() bool) {
	s.mark()
	start := s.pos
	for pred() {
		s.advance()
	}
	s.push(typ, string(s.input[start:s.pos]))
}

// enterInfoField switches the driver into modeInfo for the given key
// lexeme (e.g. "K:"), resetting per-field sub-scanner state.
func (s *Scanner) enterInfoField(kind string, inline bool) {
	s.mode = modeInfo
	s.infoKind = kind
	s.inlineField = inline
	s.lastWasNoteLenSep = false
	s.seenVoiceID = false
}

// reportError records a scanner diagnostic at the most recent mark().
func (s *Scanner) reportError(format string, args ...any) {
	if s.ctx == nil {
		return
	}
	s.ctx.Report(source.KindScanner, fmt.Sprintf(format, args...), source.Position{
		Line:   s.startLine,
		Column: s.startCol,
		Offset: s.startOffset,
	}, nil)
}
