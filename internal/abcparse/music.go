// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcparse

import (
	"github.com/abctools/abcc/internal/abcast"
	"github.com/abctools/abcc/internal/abctok"
)

// parseMusicElement dispatches a single tune-body element. It returns nil
// when the current token starts nothing recognizable, leaving the caller
// to wrap the run in an ErrorExpr.
func (p *Parser) parseMusicElement() abcast.Expr {
	switch p.peek().Type {
	case abctok.BARLINE:
		return p.parseBarLine()
	case abctok.LBRACKET:
		return p.parseChord()
	case abctok.LBRACE:
		return p.parseGraceGroup()
	case abctok.LPAREN_TUPLET:
		return p.parseTuplet()
	case abctok.INLINE_FIELD_OPEN:
		return p.parseInlineField()
	case abctok.DECORATION:
		return p.parseDecoration()
	case abctok.ANNOTATION:
		return p.parseAnnotation()
	case abctok.SYMBOL:
		return p.parseSymbol()
	case abctok.YSPACER:
		return p.parseYSpacer()
	case abctok.VOICE_OVERLAY:
		return p.parseVoiceOverlay()
	case abctok.MULTI_MEASURE_REST_MARK:
		return p.parseMultiMeasureRest()
	case abctok.NOTE_LETTER, abctok.REST, abctok.ACCIDENTAL:
		return p.parseNote()
	case abctok.TIE:
		// a tie binds to an adjacent note; one followed by no pitch is not
		// consumed here, so the caller can place it (or reject it) itself.
		if p.tieStartsNote() {
			return p.parseNote()
		}
		return nil
	default:
		return nil
	}
}

// tieStartsNote reports whether the TIE at the cursor is immediately
// followed (whitespace aside) by something that can begin a note.
func (p *Parser) tieStartsNote() bool {
	i := 1
	for p.peekAt(i).Type == abctok.WHITESPACE {
		i++
	}
	switch p.peekAt(i).Type {
	case abctok.NOTE_LETTER, abctok.REST, abctok.ACCIDENTAL:
		return true
	default:
		return false
	}
}

// ---- notes / pitches / rhythm ------------------------------------------------

func (p *Parser) parseNote() *abcast.Note {
	n := abcast.NewNote(p.newID())
	if t, ok := p.match(abctok.TIE); ok {
		n.LeadingTie = &t
	}
	if p.check(abctok.REST) {
		n.Rest = p.parseRest()
	} else {
		n.Pitch = p.parsePitch()
	}
	n.Rhythm = p.tryParseRhythm()
	if t, ok := p.match(abctok.TIE); ok {
		n.TrailingTie = &t
	}
	return n
}

func (p *Parser) parsePitch() *abcast.Pitch {
	pitch := abcast.NewPitch(p.newID())
	if t, ok := p.match(abctok.ACCIDENTAL); ok {
		pitch.Accidental = &t
	}
	pitch.Letter, _ = p.want(abctok.NOTE_LETTER)
	for p.checkAny(abctok.OCTAVE_UP, abctok.COMMA) {
		pitch.Octave = append(pitch.Octave, p.advance())
	}
	return pitch
}

func (p *Parser) parseRest() *abcast.Rest {
	r := abcast.NewRest(p.newID())
	r.Token, _ = p.want(abctok.REST)
	return r
}

func (p *Parser) parseMultiMeasureRest() *abcast.MultiMeasureRest {
	m := abcast.NewMultiMeasureRest(p.newID())
	tok, _ := p.want(abctok.MULTI_MEASURE_REST_MARK)
	rest := abcast.NewRest(p.newID())
	rest.Token = tok
	m.Token = *rest
	m.Count = p.tryParseRhythm()
	return m
}

// tryParseRhythm consumes any run of RHY_NUMERATOR/RHY_SEP/RHY_BROKEN
// tokens immediately following a note, rest, or chord. The scanner does
// not distinguish numerator from denominator (both are RHY_NUMERATOR); the
// parser resolves that by position relative to the separator.
func (p *Parser) tryParseRhythm() *abcast.Rhythm {
	if !p.checkAny(abctok.RHY_NUMERATOR, abctok.RHY_SEP, abctok.RHY_BROKEN) {
		return nil
	}
	r := abcast.NewRhythm(p.newID())
	sepSeen := false
	for p.checkAny(abctok.RHY_NUMERATOR, abctok.RHY_SEP, abctok.RHY_BROKEN) {
		t := p.advance()
		switch t.Type {
		case abctok.RHY_SEP:
			r.Separator = &t
			sepSeen = true
		case abctok.RHY_NUMERATOR:
			if !sepSeen && r.Numerator == nil {
				r.Numerator = &t
			} else {
				r.Denominator = &t
			}
		case abctok.RHY_BROKEN:
			r.Broken = &t
		}
	}
	return r
}

// ---- chords / grace groups / tuplets -----------------------------------------

func (p *Parser) parseChord() *abcast.Chord {
	c := abcast.NewChord(p.newID())
	p.want(abctok.LBRACKET)
	for !p.isAtEnd() && !p.check(abctok.RBRACKET) && !p.check(abctok.EOL) {
		switch {
		case p.check(abctok.WHITESPACE):
			p.advance()
		case p.check(abctok.ANNOTATION):
			c.Notes = append(c.Notes, p.parseAnnotation())
		default:
			if p.checkAny(abctok.NOTE_LETTER, abctok.REST, abctok.ACCIDENTAL, abctok.TIE) {
				c.Notes = append(c.Notes, p.parseNote())
			} else {
				p.advance() // tolerate stray tokens inside a chord
			}
		}
	}
	p.want(abctok.RBRACKET)
	c.Rhythm = p.tryParseRhythm()
	if t, ok := p.match(abctok.TIE); ok {
		c.TrailingTie = &t
	}
	return c
}

func (p *Parser) parseGraceGroup() *abcast.GraceGroup {
	g := abcast.NewGraceGroup(p.newID())
	p.want(abctok.LBRACE)
	if _, ok := p.match(abctok.ACCIACCATURA_SLASH); ok {
		g.Acciaccatura = true
	}
	for !p.isAtEnd() && !p.check(abctok.RBRACE) && !p.check(abctok.EOL) {
		if p.check(abctok.WHITESPACE) {
			p.advance()
			continue
		}
		if p.checkAny(abctok.NOTE_LETTER, abctok.REST, abctok.ACCIDENTAL, abctok.TIE) {
			g.Notes = append(g.Notes, p.parseNote())
		} else {
			p.advance()
		}
	}
	p.want(abctok.RBRACE)
	return g
}

// matchTupletColon accepts a ':' separator. The scanner's bar-line
// primitive matches a lone ':' too (it's a barline prefix), so a tuplet's
// separator can surface as a BARLINE(":") token; accept either shape.
func (p *Parser) matchTupletColon() bool {
	if _, ok := p.match(abctok.COLON); ok {
		return true
	}
	if p.check(abctok.BARLINE) && p.peek().Lexeme == ":" {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseTuplet() *abcast.Tuplet {
	t := abcast.NewTuplet(p.newID())
	p.want(abctok.LPAREN_TUPLET)
	if pTok, ok := p.want(abctok.RHY_NUMERATOR); ok {
		t.P = &pTok
	}
	if p.matchTupletColon() {
		if q, ok := p.match(abctok.RHY_NUMERATOR); ok {
			t.Q = &q
		}
		if p.matchTupletColon() {
			if r, ok := p.match(abctok.RHY_NUMERATOR); ok {
				t.R = &r
			}
		}
	}
	return t
}

// ---- bar lines ----------------------------------------------------------------

func (p *Parser) parseBarLine() *abcast.BarLine {
	b := abcast.NewBarLine(p.newID())
	if tok, ok := p.want(abctok.BARLINE); ok {
		b.Bars = append(b.Bars, tok)
	}
	for p.check(abctok.BARLINE) {
		b.Bars = append(b.Bars, p.advance())
	}
	for {
		switch {
		case p.check(abctok.RHY_NUMERATOR):
			b.Repeats = append(b.Repeats, p.advance())
		case p.check(abctok.COMMA):
			b.Repeats = append(b.Repeats, p.advance())
		case p.check(abctok.TIE):
			b.Repeats = append(b.Repeats, p.advance())
		case p.check(abctok.REST) && p.peek().Lexeme == "x":
			b.Repeats = append(b.Repeats, p.advance())
		default:
			return b
		}
	}
}

// ---- decoration / annotation / symbol / misc leaves --------------------------

func (p *Parser) parseDecoration() *abcast.Decoration {
	d := abcast.NewDecoration(p.newID())
	d.Token, _ = p.want(abctok.DECORATION)
	return d
}

func (p *Parser) parseAnnotation() *abcast.Annotation {
	a := abcast.NewAnnotation(p.newID())
	a.Token, _ = p.want(abctok.ANNOTATION)
	return a
}

func (p *Parser) parseSymbol() *abcast.Symbol {
	s := abcast.NewSymbol(p.newID())
	s.Token, _ = p.want(abctok.SYMBOL)
	return s
}

func (p *Parser) parseYSpacer() *abcast.YSpacer {
	y := abcast.NewYSpacer(p.newID())
	y.Token, _ = p.want(abctok.YSPACER)
	return y
}

func (p *Parser) parseVoiceOverlay() *abcast.VoiceOverlay {
	v := abcast.NewVoiceOverlay(p.newID())
	v.Token, _ = p.want(abctok.VOICE_OVERLAY)
	return v
}
