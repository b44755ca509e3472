// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package abctlex implements the scanner for ABCT, the pipe-based mini-
// language for composing ABC transformations. It shares internal/abclex's
// architecture (a mutable scan context, primitives that match-and-advance
// or leave the cursor untouched, a driver that retries them in precedence
// order) but carries ABCT's own, smaller token set: identifiers/keywords,
// numeric literals, escaped strings, fenced and single-line ABC literals,
// and a small operator table.
package abctlex

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abctools/abcc/internal/abcttok"
	"github.com/abctools/abcc/internal/source"
)

// Scanner tokenizes ABCT source text.
type Scanner struct {
	ctx   *source.Context
	input []byte

	pos  int
	line int
	col  int

	tokens []abcttok.Token

	atLineStart bool

	startLine, startCol, startOffset int
}

// New returns a scanner over input.
func New(ctx *source.Context, input []byte) *Scanner {
	return &Scanner{ctx: ctx, input: input, atLineStart: true}
}

// Scan runs the scanner to completion, always terminating in one EOF token.
func Scan(ctx *source.Context, input []byte) []abcttok.Token {
	s := New(ctx, input)
	return s.Run()
}

func (s *Scanner) Run() []abcttok.Token {
	for s.pos < len(s.input) {
		if s.tryPrimitives() {
			continue
		}
		s.scanInvalid()
	}
	s.mark()
	s.push(abcttok.EOF, "")
	return s.tokens
}

func (s *Scanner) tryPrimitives() bool {
	switch {
	case s.tryEOL():
		return true
	case s.tryWhitespace():
		return true
	case s.tryComment():
		return true
	case s.tryAbcFenceOpen():
		return true
	case s.tryAbcLiteral():
		return true
	case s.tryString():
		return true
	case s.tryNumber():
		return true
	case s.tryIdentifierOrKeyword():
		return true
	case s.tryOperator():
		return true
	default:
		return false
	}
}

// ---- cursor primitives -----------------------------------------------------

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

func (s *Scanner) hasPrefixAt(off int, p string) bool {
	end := s.pos + off + len(p)
	if end > len(s.input) {
		return false
	}
	return string(s.input[s.pos+off:end]) == p
}

func (s *Scanner) hasPrefix(p string) bool { return s.hasPrefixAt(0, p) }

func (s *Scanner) mark() {
	s.startLine, s.startCol, s.startOffset = s.line, s.col, s.pos
}

func (s *Scanner) push(typ abcttok.Type, lexeme string) {
	id := uint32(0)
	if s.ctx != nil {
		id = s.ctx.NextID()
	}
	s.tokens = append(s.tokens, abcttok.Token{
		Type:   typ,
		Lexeme: lexeme,
		Line:   s.startLine,
		Column: s.startCol,
		Offset: s.startOffset,
		Id:     id,
	})
}

func (s *Scanner) emit(typ abcttok.Type, n int) {
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

func (s *Scanner) emitRun(typ abcttok.Type, pred func() bool) {
	s.mark()
	start := s.pos
	for pred() {
		s.advance()
	}
	s.push(typ, string(s.input[start:s.pos]))
}

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

// ---- trivia -----------------------------------------------------------------

func (s *Scanner) tryEOL() bool {
	r := s.current()
	if r != '\n' && r != '\r' {
		return false
	}
	s.mark()
	start := s.pos
	if r == '\r' && s.peekAt(1) == '\n' {
		s.advance()
		s.advance()
	} else {
		s.advance()
	}
	s.push(abcttok.EOL, string(s.input[start:s.pos]))
	return true
}

func (s *Scanner) tryWhitespace() bool {
	r := s.current()
	if r != ' ' && r != '\t' {
		return false
	}
	s.emitRun(abcttok.WHITESPACE, func() bool {
		c := s.current()
		return c == ' ' || c == '\t'
	})
	return true
}

// tryComment recognizes "#" to end of line. It runs before fence
// detection; a fence opener starts with backticks, never "#", so the two
// never compete, and it never fires mid fenced-content scan (that content
// is consumed wholesale by tryAbcFenceOpen).
func (s *Scanner) tryComment() bool {
	if s.current() != '#' {
		return false
	}
	s.emitRun(abcttok.COMMENT, func() bool {
		c := s.current()
		return c != -1 && c != '\n' && c != '\r'
	})
	return true
}

func (s *Scanner) scanInvalid() {
	s.mark()
	start := s.pos
	for s.pos < len(s.input) {
		c := s.current()
		if c == '\n' || c == '\r' || unicode.IsSpace(c) {
			break
		}
		if _, ok := operatorAt(s.input[s.pos:]); ok {
			break
		}
		s.advance()
		if s.pos == start {
			break
		}
	}
	if s.pos == start {
		s.advance()
	}
	lexeme := string(s.input[start:s.pos])
	s.reportError("invalid character(s) %q", lexeme)
	s.push(abcttok.INVALID, lexeme)
}

// ---- identifiers, numbers, strings ------------------------------------------

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }
func isIdentCont(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

func (s *Scanner) tryIdentifierOrKeyword() bool {
	if !isIdentStart(s.current()) {
		return false
	}
	s.mark()
	start := s.pos
	for isIdentCont(s.current()) {
		s.advance()
	}
	lexeme := string(s.input[start:s.pos])
	if kw, ok := abcttok.Keyword(lexeme); ok {
		s.push(kw, lexeme)
	} else {
		s.push(abcttok.IDENTIFIER, lexeme)
	}
	return true
}

// tryNumber matches a fraction (d+/d+) before a decimal (d+(.d+)?), per the
// maximal-munch ordering the ABC scanner uses for the same ambiguity.
// Leading '-' is never matched; unary minus is the parser's concern.
func (s *Scanner) tryNumber() bool {
	if !unicode.IsDigit(s.current()) {
		return false
	}
	s.mark()
	start := s.pos
	for unicode.IsDigit(s.current()) {
		s.advance()
	}
	if s.current() == '/' && unicode.IsDigit(s.peekAt(1)) {
		s.advance() // '/'
		for unicode.IsDigit(s.current()) {
			s.advance()
		}
		s.push(abcttok.NUMBER, string(s.input[start:s.pos]))
		return true
	}
	if s.current() == '.' && unicode.IsDigit(s.peekAt(1)) {
		s.advance() // '.'
		for unicode.IsDigit(s.current()) {
			s.advance()
		}
	}
	s.push(abcttok.NUMBER, string(s.input[start:s.pos]))
	return true
}

// tryString consumes a double-quoted string with backslash escapes. A
// missing closing quote is reported but a STRING token is still emitted
// for recovery.
func (s *Scanner) tryString() bool {
	if s.current() != '"' {
		return false
	}
	s.mark()
	start := s.pos
	s.advance() // opening quote
	closed := false
	for {
		c := s.current()
		if c == -1 || c == '\n' {
			break
		}
		if c == '\\' {
			s.advance()
			if s.current() != -1 {
				s.advance()
			}
			continue
		}
		if c == '"' {
			s.advance()
			closed = true
			break
		}
		s.advance()
	}
	lexeme := string(s.input[start:s.pos])
	if !closed {
		s.reportError("Unterminated string literal")
	}
	s.push(abcttok.STRING, lexeme)
	return true
}

// ---- operators ---------------------------------------------------------------

// operatorTable lists multi-character operators before any single-character
// prefix they share, so operatorAt performs maximal munch by construction.
var operatorTable = []struct {
	lexeme string
	typ    abcttok.Type
}{
	{"=>", abcttok.ARROW},
	{"|=", abcttok.PIPE_EQ},
	{"==", abcttok.EQEQ},
	{"!=", abcttok.NEQ},
	{"<=", abcttok.LE},
	{">=", abcttok.GE},
	{"|", abcttok.PIPE},
	{"+", abcttok.PLUS},
	{"=", abcttok.EQ},
	{"@", abcttok.AT},
	{":", abcttok.COLON},
	{"-", abcttok.DASH},
	{".", abcttok.DOT},
	{",", abcttok.COMMA},
	{"(", abcttok.LPAREN},
	{")", abcttok.RPAREN},
	{"[", abcttok.LBRACKET},
	{"]", abcttok.RBRACKET},
	{"{", abcttok.LBRACE},
	{"}", abcttok.RBRACE},
	{"<", abcttok.LT},
	{">", abcttok.GT},
}

func operatorAt(b []byte) (abcttok.Type, bool) {
	s := string(b)
	for _, op := range operatorTable {
		if strings.HasPrefix(s, op.lexeme) {
			return op.typ, true
		}
	}
	return 0, false
}

func (s *Scanner) tryOperator() bool {
	typ, ok := operatorAt(s.input[s.pos:])
	if !ok {
		return false
	}
	lexeme := ""
	for _, op := range operatorTable {
		if strings.HasPrefix(string(s.input[s.pos:]), op.lexeme) {
			lexeme = op.lexeme
			break
		}
	}
	s.emit(typ, len(lexeme))
	return true
}
