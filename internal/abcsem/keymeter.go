// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcsem

import (
	"strconv"
	"strings"

	"github.com/abctools/abcc/internal/abcast"
	"github.com/abctools/abcc/internal/abctok"
)

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func normalizeKeyMode(raw string) string {
	switch strings.ToLower(raw) {
	case "m", "min":
		return "minor"
	case "maj":
		return "major"
	case "ion":
		return "ionian"
	case "aeo":
		return "aeolian"
	case "mix":
		return "mixolydian"
	case "dor":
		return "dorian"
	case "phr":
		return "phrygian"
	case "lyd":
		return "lydian"
	case "loc":
		return "locrian"
	default:
		return strings.ToLower(raw)
	}
}

// analyzeKey builds a KeySignature from K:'s raw value tokens, which the
// scanner already split into KEY_ROOT/KEY_ACCIDENTAL/KEY_MODE/KEY_CLEF_KW/
// KEY_MODIFIER_KW/CLEF_NAME/CLEF_NUM/CLEF_OCTAVE/KEY_ACCIDENTAL kinds.
func (a *Analyzer) analyzeKey(n *abcast.InfoLine) {
	values := nonWhitespace(n.Values)
	if len(values) == 0 {
		a.report(n.Key, n.ID(), "K: missing key signature")
		return
	}
	if values[0].Type == abctok.KEY_NONE {
		a.set(n.ID(), Data{Kind: KindKeyInfo, Key: KeySignature{}})
		return
	}

	var ks KeySignature
	i := 0
	if values[i].Type == abctok.KEY_ROOT {
		ks.Root = values[i].Lexeme
		i++
		if i < len(values) && values[i].Type == abctok.KEY_ACCIDENTAL {
			ks.Accidental = values[i].Lexeme
			i++
		}
		if i < len(values) && values[i].Type == abctok.KEY_MODE {
			ks.Mode = normalizeKeyMode(values[i].Lexeme)
			i++
		}
	}

	var clef *ClefInfo
	for i < len(values) {
		t := values[i]
		switch t.Type {
		case abctok.KEY_CLEF_KW:
			i++
			clef = &ClefInfo{Name: "treble"}
			if i < len(values) && (values[i].Type == abctok.CLEF_NAME || values[i].Type == abctok.IDENT) {
				clef.Name = values[i].Lexeme
				i++
			}
			pos, known := lookupClef(clef.Name)
			if !known {
				a.report(t, n.ID(), "unknown clef %q, falling back to treble", clef.Name)
				clef.Name = "treble"
			}
			line := pos.line
			clef.Line = &line
			clef.OctaveShift = pos.octaveShift
			if i < len(values) && values[i].Type == abctok.CLEF_NUM {
				if nline, err := strconv.Atoi(values[i].Lexeme); err == nil {
					clef.Line = &nline
				}
				i++
			}
			if i < len(values) && values[i].Type == abctok.CLEF_OCTAVE {
				if shift, err := strconv.Atoi(values[i].Lexeme); err == nil {
					clef.OctaveShift = shift
				}
				i++
			}
		case abctok.KEY_MODIFIER_KW:
			kw := strings.TrimSuffix(t.Lexeme, "=")
			i++
			var val string
			if i < len(values) {
				val = values[i].Lexeme
				i++
			}
			if clef == nil {
				clef = &ClefInfo{Name: "treble"}
				pos, _ := lookupClef("treble")
				line := pos.line
				clef.Line = &line
			}
			switch kw {
			case "middle":
				clef.Middle = val
			case "transpose":
				if v, err := strconv.Atoi(val); err == nil {
					clef.Transpose = &v
				}
			case "stafflines":
				if v, err := strconv.Atoi(val); err == nil {
					clef.StaffLines = &v
				}
			case "staffscale":
				if f, err := strconv.ParseFloat(val, 64); err == nil {
					clef.StaffScale = &f
				}
			case "style":
				clef.Style = val
			}
		case abctok.KEY_ACCIDENTAL:
			acc := t.Lexeme
			i++
			if i < len(values) {
				ks.Accidentals = append(ks.Accidentals, acc+values[i].Lexeme)
				i++
			}
		default:
			i++
		}
	}
	ks.Clef = clef
	a.set(n.ID(), Data{Kind: KindKeyInfo, Key: ks})
}

// meterParser is a small recursive-descent parser over M:'s sub-tokens:
// NumGroup '/' NUMBER, where NumGroup is '(' NUMBER ('+' NUMBER)* ')' | NUMBER.
type meterParser struct {
	toks []abctok.Token
	pos  int
}

func (p *meterParser) peek() abctok.Token {
	if p.pos >= len(p.toks) {
		return abctok.Token{}
	}
	return p.toks[p.pos]
}

func (p *meterParser) parse() ([]int, int, bool) {
	nums, ok := p.parseNumGroup()
	if !ok || p.peek().Type != abctok.METER_SEPARATOR {
		return nil, 0, false
	}
	p.pos++
	if p.peek().Type != abctok.METER_NUMBER {
		return nil, 0, false
	}
	den, err := strconv.Atoi(p.peek().Lexeme)
	if err != nil {
		return nil, 0, false
	}
	p.pos++
	return nums, den, true
}

func (p *meterParser) parseNumGroup() ([]int, bool) {
	if p.peek().Type == abctok.METER_LPAREN {
		p.pos++
		var nums []int
		for {
			if p.peek().Type != abctok.METER_NUMBER {
				return nil, false
			}
			v, err := strconv.Atoi(p.peek().Lexeme)
			if err != nil {
				return nil, false
			}
			nums = append(nums, v)
			p.pos++
			if p.peek().Type == abctok.METER_PLUS {
				p.pos++
				continue
			}
			break
		}
		if p.peek().Type != abctok.METER_RPAREN {
			return nil, false
		}
		p.pos++
		return nums, true
	}
	if p.peek().Type == abctok.METER_NUMBER {
		v, err := strconv.Atoi(p.peek().Lexeme)
		if err != nil {
			return nil, false
		}
		p.pos++
		return []int{v}, true
	}
	return nil, false
}

func (a *Analyzer) analyzeMeter(n *abcast.InfoLine) {
	values := nonWhitespace(n.Values)
	if len(values) == 0 {
		a.report(n.Key, n.ID(), "M: missing meter")
		return
	}
	switch values[0].Type {
	case abctok.METER_C:
		a.set(n.ID(), Data{Kind: KindMeterInfo, Meter: MeterInfo{Type: MeterCommonTime, Numerators: []int{4}, Denominator: 4}})
		return
	case abctok.METER_C_BAR:
		a.set(n.ID(), Data{Kind: KindMeterInfo, Meter: MeterInfo{Type: MeterCutTime, Numerators: []int{2}, Denominator: 2}})
		return
	case abctok.IDENT:
		if values[0].Lexeme == "none" {
			a.set(n.ID(), Data{Kind: KindMeterInfo, Meter: MeterInfo{Type: MeterSpecified}})
			return
		}
	}
	mp := &meterParser{toks: values}
	nums, den, ok := mp.parse()
	if !ok {
		a.report(n.Key, n.ID(), "M: invalid meter expression")
		return
	}
	a.set(n.ID(), Data{Kind: KindMeterInfo, Meter: MeterInfo{Type: MeterSpecified, Numerators: nums, Denominator: den}})
}

// analyzeNoteLength reads the *Rational the parser already built for L:.
func (a *Analyzer) analyzeNoteLength(n *abcast.InfoLine) {
	r, ok := n.Sub.(*abcast.Rational)
	if !ok || r == nil {
		a.report(n.Key, n.ID(), "L: missing note length")
		return
	}
	num, err := strconv.Atoi(r.Numerator.Lexeme)
	if err != nil {
		a.report(n.Key, n.ID(), "L: invalid numerator %q", r.Numerator.Lexeme)
		return
	}
	den := 1
	if r.Denominator != nil {
		d, err := strconv.Atoi(r.Denominator.Lexeme)
		if err != nil {
			a.report(n.Key, n.ID(), "L: invalid denominator %q", r.Denominator.Lexeme)
			return
		}
		den = d
	}
	if num > den {
		a.report(n.Key, n.ID(), "L: numerator %d must not exceed denominator %d", num, den)
		return
	}
	a.set(n.ID(), Data{Kind: KindNoteLength, NoteLength: NoteLengthValue{Numerator: num, Denominator: den}})
}

// analyzeTempo follows Q:'s order: optional leading annotation, optional
// num/den=bpm, optional trailing annotation, or a bare bpm in place of the
// num/den=bpm group.
func (a *Analyzer) analyzeTempo(n *abcast.InfoLine) {
	values := nonWhitespace(n.Values)
	var info TempoInfo
	i := 0
	if i < len(values) && values[i].Type == abctok.TEMPO_ANNOTATION {
		info.PreString = unquote(values[i].Lexeme)
		i++
	}
	if i < len(values) && values[i].Type == abctok.TEMPO_NUMBER {
		first, _ := strconv.Atoi(values[i].Lexeme)
		i++
		if i < len(values) && values[i].Type == abctok.RHY_SEP {
			i++
			if i < len(values) && values[i].Type == abctok.TEMPO_NUMBER {
				den, _ := strconv.Atoi(values[i].Lexeme)
				i++
				num := first
				info.DurNum, info.DurDen = &num, &den
				if i < len(values) && values[i].Type == abctok.TEMPO_EQUALS {
					i++
					if i < len(values) && values[i].Type == abctok.TEMPO_NUMBER {
						bpm, _ := strconv.Atoi(values[i].Lexeme)
						info.BPM = &bpm
						i++
					}
				}
			}
		} else {
			bpm := first
			info.BPM = &bpm
		}
	}
	if i < len(values) && values[i].Type == abctok.TEMPO_ANNOTATION {
		info.PostString = unquote(values[i].Lexeme)
		i++
	}
	a.set(n.ID(), Data{Kind: KindTempoInfo, Tempo: info})
}

// analyzeVoice collects a V: line's own id and properties. Properties are
// recorded per occurrence, not merged across a tune's repeated V: lines for
// the same id; a consumer building the effective per-voice view folds over
// InfoLine entries in document order, letting a later property win over an
// earlier one with the same key.
func (a *Analyzer) analyzeVoice(n *abcast.InfoLine) {
	values := nonWhitespace(n.Values)
	if len(values) == 0 || values[0].Type != abctok.VOICE_ID {
		a.report(n.Key, n.ID(), "V: missing voice id")
		return
	}
	info := VoiceInfo{ID: values[0].Lexeme, Properties: map[string]string{}}
	i := 1
	for i < len(values) {
		if values[i].Type != abctok.VOICE_PROP_KEY {
			i++
			continue
		}
		key := values[i].Lexeme
		i++
		var val string
		if i < len(values) && values[i].Type == abctok.VOICE_PROP_EQ {
			i++
			if i < len(values) && values[i].Type == abctok.VOICE_PROP_VALUE {
				val = unquote(values[i].Lexeme)
				i++
			}
		}
		info.Properties[key] = val
	}
	a.set(n.ID(), Data{Kind: KindVoiceInfo, Voice: info})
}
