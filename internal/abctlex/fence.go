// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abctlex

import (
	"regexp"

	"github.com/abctools/abcc/internal/abcttok"
)

// fenceOpenPattern matches a line that opens a fenced ABC literal: three
// backticks, an optional "abc" tag, an optional ":L[:C][-L[:C]]" location
// suffix, then end of line (CR, LF, CRLF, or EOF). The match includes the
// line ending, so the whole opener becomes one ABC_FENCE_OPEN token.
var fenceOpenPattern = regexp.MustCompile(`^` + "```" + `(abc)?(:\d+(:\d+)?(-\d+(:\d+)?)?)?[ \t]*(\r\n|\r|\n|$)`)

// fenceClosePattern matches a line whose entire (trimmed) content is three
// backticks, optionally indented.
var fenceClosePattern = regexp.MustCompile(`^[ \t]*` + "```" + `[ \t]*$`)

// tryAbcFenceOpen recognizes an opening fence, which must start at the
// beginning of a line. On success it consumes the opener, the content up
// to (but not including) the closing fence line, and the closing fence
// itself, pushing ABC_FENCE_OPEN, an optional ABC_CONTENT (raw source
// bytes — sanitize on read, not on store, so the scanner round-trip
// invariant holds unconditionally), and ABC_FENCE_CLOSE.
func (s *Scanner) tryAbcFenceOpen() bool {
	if !s.atLineStart {
		return false
	}
	loc := fenceOpenPattern.FindIndex(s.input[s.pos:])
	if loc == nil {
		return false
	}
	s.mark()
	openEnd := s.pos + loc[1]
	start := s.pos
	for s.pos < openEnd {
		s.advance()
	}
	s.push(abcttok.ABC_FENCE_OPEN, string(s.input[start:s.pos]))

	s.mark()
	contentStart := s.pos
	closed := false
	for s.pos < len(s.input) {
		if s.atLineStart && isCloseLine(s.input, s.pos) {
			closed = true
			break
		}
		s.advance()
	}
	if s.pos > contentStart {
		s.push(abcttok.ABC_CONTENT, string(s.input[contentStart:s.pos]))
	}

	if !closed {
		s.reportError("Unterminated ABC fence, expected closing ```")
		return true
	}

	s.mark()
	closeStart := s.pos
	lineEnd := closeStart
	for lineEnd < len(s.input) && s.input[lineEnd] != '\n' && s.input[lineEnd] != '\r' {
		lineEnd++
	}
	for s.pos < lineEnd {
		s.advance()
	}
	s.push(abcttok.ABC_FENCE_CLOSE, string(s.input[closeStart:s.pos]))
	return true
}

// isCloseLine reports whether the line starting at offset off matches the
// closing-fence pattern.
func isCloseLine(input []byte, off int) bool {
	end := off
	for end < len(input) && input[end] != '\n' && input[end] != '\r' {
		end++
	}
	return fenceClosePattern.Match(input[off:end])
}

// tryAbcLiteral recognizes a backtick-delimited single-line ABC literal:
// `...`. It is tried after the triple-backtick fence so a run of three or
// more backticks is never ambiguous.
func (s *Scanner) tryAbcLiteral() bool {
	if s.current() != '`' || s.hasPrefix("```") {
		return false
	}
	s.mark()
	openStart := s.pos
	s.advance()
	s.push(abcttok.ABC_LITERAL_OPEN, string(s.input[openStart:s.pos]))

	s.mark()
	contentStart := s.pos
	for {
		c := s.current()
		if c == -1 || c == '\n' || c == '\r' {
			s.reportError("Unterminated ABC literal, expected closing `")
			break
		}
		if c == '`' {
			break
		}
		s.advance()
	}
	if s.pos > contentStart {
		s.push(abcttok.ABC_LITERAL_CONTENT, string(s.input[contentStart:s.pos]))
	}
	if s.current() == '`' {
		s.mark()
		closeStart := s.pos
		s.advance()
		s.push(abcttok.ABC_LITERAL_CLOSE, string(s.input[closeStart:s.pos]))
	}
	return true
}
