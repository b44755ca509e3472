// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcparse

import (
	"github.com/abctools/abcc/internal/abcast"
	"github.com/abctools/abcc/internal/abctok"
)

// parseInfoLine consumes an INFO_KEY and the tokens making up its value,
// stopping at EOL/SECTION_BREAK/EOF. The semantic analyzer re-walks Values
// for the fields whose sub-scanner already split out field-specific token
// kinds (K:, M:, Q:, V:); parseInfoLine builds a Sub expression itself only
// for L:, where the rational shape maps directly onto the reusable
// Rational node.
func (p *Parser) parseInfoLine() *abcast.InfoLine {
	line := abcast.NewInfoLine(p.newID())
	line.Key, _ = p.want(abctok.INFO_KEY)
	line.Values = p.collectFieldValues()
	if line.Key.Lexeme == "L:" {
		line.Sub = buildNoteLengthRational(p, line.Values)
	}
	return line
}

// collectFieldValues gathers every token (including whitespace, so the
// round trip holds) up to the field's terminator.
func (p *Parser) collectFieldValues() []abctok.Token {
	var out []abctok.Token
	for !p.isAtEnd() && !p.check(abctok.EOL) && !p.check(abctok.SECTION_BREAK) && !p.check(abctok.INLINE_FIELD_CLOSE) {
		out = append(out, p.advance())
	}
	return out
}

func buildNoteLengthRational(p *Parser, values []abctok.Token) *abcast.Rational {
	var num, den *abctok.Token
	for i := range values {
		switch values[i].Type {
		case abctok.NOTE_LENGTH_NUM:
			if num == nil {
				t := values[i]
				num = &t
			}
		case abctok.NOTE_LENGTH_DEN:
			if den == nil {
				t := values[i]
				den = &t
			}
		}
	}
	if num == nil {
		return nil
	}
	r := abcast.NewRational(p.newID())
	r.Numerator = *num
	r.Denominator = den
	return r
}

// parseDirective consumes a "%%" marker and its INFO_VALUE_TEXT body.
func (p *Parser) parseDirective() *abcast.Directive {
	d := abcast.NewDirective(p.newID())
	d.Key, _ = p.want(abctok.DIRECTIVE_MARKER)
	d.Values = p.collectFieldValues()
	return d
}

// parseInlineField parses "[" INFO_KEY ... "]" appearing mid-line in the
// tune body, e.g. "[K:Bb]".
func (p *Parser) parseInlineField() *abcast.InlineField {
	inf := abcast.NewInlineField(p.newID())
	p.want(abctok.INLINE_FIELD_OPEN)
	inf.Field = p.parseInfoLine()
	p.want(abctok.INLINE_FIELD_CLOSE)
	return inf
}
