// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcsem

import (
	"strconv"
	"strings"

	"github.com/abctools/abcc/internal/abcast"
)

func (a *Analyzer) analyzeBooleanFlag(n *abcast.Directive, name string, args []string) {
	if len(args) > 0 {
		a.report(n.Key, n.ID(), "%s: takes no parameters", name)
		return
	}
	a.set(n.ID(), Data{Kind: KindBooleanFlag, BooleanFlag: true})
}

func (a *Analyzer) analyzeIdentifier(n *abcast.Directive, name string, args []string) {
	if len(args) != 1 {
		a.report(n.Key, n.ID(), "%s: expected exactly one identifier", name)
		return
	}
	a.set(n.ID(), Data{Kind: KindIdentifier, Identifier: args[0]})
}

func (a *Analyzer) analyzeBooleanValue(n *abcast.Directive, name string, args []string) {
	if len(args) != 1 {
		a.report(n.Key, n.ID(), "%s: expected true/false", name)
		return
	}
	v, ok := parseBool(args[0])
	if !ok {
		a.report(n.Key, n.ID(), "%s: invalid boolean %q", name, args[0])
		return
	}
	a.set(n.ID(), Data{Kind: KindBooleanValue, BooleanValue: v})
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

func (a *Analyzer) analyzeNumber(n *abcast.Directive, name string, args []string, r *numberRange) {
	if len(args) != 1 {
		a.report(n.Key, n.ID(), "%s: expected exactly one number", name)
		return
	}
	f, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		a.report(n.Key, n.ID(), "%s: invalid number %q", name, args[0])
		return
	}
	if r != nil {
		if f < r.min {
			a.report(n.Key, n.ID(), "%s %v is below minimum %v", name, f, r.min)
			return
		}
		if r.hasMax && f > *r.max {
			a.report(n.Key, n.ID(), "%s %v is above maximum %v", name, f, *r.max)
			return
		}
	}
	a.set(n.ID(), Data{Kind: KindNumber, Number: f})
}

func (a *Analyzer) analyzePosition(n *abcast.Directive, name string, args []string) {
	if len(args) != 1 {
		a.report(n.Key, n.ID(), "%s: expected one of auto/above/below/hidden", name)
		return
	}
	switch args[0] {
	case "auto", "above", "below", "hidden":
		a.set(n.ID(), Data{Kind: KindPosition, Position: PositionValue{Kind: args[0]}})
	default:
		a.report(n.Key, n.ID(), "%s: invalid position %q", name, args[0])
	}
}

func (a *Analyzer) analyzeMeasurement(n *abcast.Directive, name string, args []string) {
	if len(args) != 1 {
		a.report(n.Key, n.ID(), "%s: expected a number with an optional unit", name)
		return
	}
	value, unit, ok := splitNumberUnit(args[0])
	if !ok || !measurementUnits[unit] {
		a.report(n.Key, n.ID(), "%s: invalid measurement %q", name, args[0])
		return
	}
	a.set(n.ID(), Data{Kind: KindMeasurement, Measurement: MeasurementValue{Value: value, Unit: unit}})
}

// splitNumberUnit splits a token like "12pt" into its numeric and unit
// parts.
func splitNumberUnit(s string) (float64, string, bool) {
	i := 0
	for i < len(s) && (s[i] == '-' || s[i] == '+' || s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, "", false
	}
	return f, s[i:], true
}

func (a *Analyzer) analyzeSep(n *abcast.Directive, name string, args []string) {
	if len(args) > 3 {
		a.report(n.Key, n.ID(), "%s: expected up to 3 numbers", name)
		return
	}
	var sep SepValue
	ptrs := []**float64{}
	var above, below, length *float64
	ptrs = append(ptrs, &above, &below, &length)
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			a.report(n.Key, n.ID(), "%s: invalid number %q", name, arg)
			return
		}
		*ptrs[i] = &f
	}
	sep.Above, sep.Below, sep.Length = above, below, length
	a.set(n.ID(), Data{Kind: KindSep, Sep: sep})
}

func (a *Analyzer) analyzeAnnotation(n *abcast.Directive, name string, args []string) {
	text := strings.Join(args, " ")
	if name == "abc-version" {
		a.set(n.ID(), Data{Kind: KindAbcVersion, Version: AbcVersion{Version: parseAbcVersion(text)}})
		return
	}
	a.set(n.ID(), Data{Kind: KindAnnotation, Annotation: text})
}

func (a *Analyzer) analyzeNewpage(n *abcast.Directive, name string, args []string) {
	if len(args) == 0 {
		a.set(n.ID(), Data{Kind: KindNewpage, Newpage: NewpageValue{}})
		return
	}
	if len(args) != 1 {
		a.report(n.Key, n.ID(), "%s: expected an optional page number", name)
		return
	}
	p, err := strconv.Atoi(args[0])
	if err != nil {
		a.report(n.Key, n.ID(), "%s: invalid page number %q", name, args[0])
		return
	}
	a.set(n.ID(), Data{Kind: KindNewpage, Newpage: NewpageValue{Page: &p}})
}

// analyzeFont implements the three font-directive formats from the
// dispatch table: "* size [box]", "size [box]", or a face-token
// accumulation followed by modifiers.
func (a *Analyzer) analyzeFont(n *abcast.Directive, name string, args []string, boxCapable bool) {
	if len(args) == 0 {
		a.report(n.Key, n.ID(), "%s: empty font directive", name)
		return
	}
	spec := FontSpec{}

	if args[0] == "*" {
		spec.UseCurrent = true
		args = args[1:]
		if len(args) == 0 {
			a.report(n.Key, n.ID(), "%s: missing size after '*'", name)
			return
		}
		size, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			a.report(n.Key, n.ID(), "%s: invalid size %q", name, args[0])
			return
		}
		spec.Size = &size
		args = args[1:]
		a.applyFontModifiers(n, name, args, boxCapable, &spec)
		a.set(n.ID(), Data{Kind: KindFont, Font: spec})
		return
	}

	if size, err := strconv.ParseFloat(args[0], 64); err == nil {
		spec.Size = &size
		args = args[1:]
		a.applyFontModifiers(n, name, args, boxCapable, &spec)
		a.set(n.ID(), Data{Kind: KindFont, Font: spec})
		return
	}

	// face-token accumulation: join hyphen-linked parts until a numeric
	// token, a modifier keyword, or utf/utf8/utf-8 is seen.
	var faceParts []string
	i := 0
	for ; i < len(args); i++ {
		tok := args[i]
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			break
		}
		lower := strings.ToLower(tok)
		if fontModifierKeywords[lower] || lower == "utf" || lower == "utf8" || lower == "utf-8" {
			break
		}
		faceParts = append(faceParts, tok)
	}
	if len(faceParts) == 0 {
		a.report(n.Key, n.ID(), "%s: missing face name", name)
		return
	}
	face := strings.Join(faceParts, "-")
	face = strings.Trim(face, `"`)
	spec.Face = face
	a.applyFontModifiers(n, name, args[i:], boxCapable, &spec)

	if spec.Face == "" && spec.Size == nil && !spec.Bold && !spec.Italic && !spec.Underline && !spec.Box {
		a.report(n.Key, n.ID(), "%s: font directive has no meaningful components", name)
		return
	}
	a.set(n.ID(), Data{Kind: KindFont, Font: spec})
}

func (a *Analyzer) applyFontModifiers(n *abcast.Directive, name string, args []string, boxCapable bool, spec *FontSpec) {
	for _, tok := range args {
		lower := strings.ToLower(tok)
		switch lower {
		case "utf", "utf8", "utf-8":
			// silently consumed
		case "bold":
			spec.Bold = true
		case "italic":
			spec.Italic = true
		case "underline":
			spec.Underline = true
		case "box":
			if !boxCapable {
				a.report(n.Key, n.ID(), "%s: box is not permitted on this directive", name)
				continue
			}
			spec.Box = true
		default:
			if size, err := strconv.ParseFloat(tok, 64); err == nil && spec.Size == nil {
				spec.Size = &size
				continue
			}
			a.report(n.Key, n.ID(), "%s: unrecognized font modifier %q", name, tok)
		}
	}
}
