// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcsem

// clefPosition is the standard ABC clef vertical-position table: the
// staff-line (bottom to top, 1-5) the clef symbol sits on and its default
// octave shift. Unknown clef names fall back to treble.
type clefPosition struct {
	line        int
	octaveShift int
}

var clefTable = map[string]clefPosition{
	"treble":  {line: 2, octaveShift: 0},
	"bass":    {line: 4, octaveShift: 0},
	"alto":    {line: 3, octaveShift: 0},
	"tenor":   {line: 4, octaveShift: 0},
	"perc":    {line: 3, octaveShift: 0},
	"none":    {line: 3, octaveShift: 0},
	"treble1": {line: 1, octaveShift: 0},
	"treble2": {line: 2, octaveShift: 0},
	"bass3":   {line: 3, octaveShift: 0},
	"bass4":   {line: 4, octaveShift: 0},
}

func lookupClef(name string) (clefPosition, bool) {
	pos, ok := clefTable[name]
	if !ok {
		return clefTable["treble"], false
	}
	return pos, true
}
