// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcsem

// directiveCategory classifies a %%directive key so the analyzer can pick
// the right parameter grammar. The table is exhaustive: every key accepted
// by a real ABC renderer falls into exactly one category, and any key not
// found here is reported as unknown rather than silently skipped.
type directiveCategory int

const (
	catFontBox directiveCategory = iota
	catFontNoBox
	catBooleanFlag
	catIdentifier
	catBooleanValue
	catNumberFree
	catNumberConstrained
	catPosition
	catMeasurement
	catSep
	catAnnotation
	catNewpage
	catComplexTODO
)

// numberRange bounds a constrained Number directive. A nil Max means
// unbounded above.
type numberRange struct {
	min    float64
	max    *float64
	hasMax bool
}

func rng(min float64, max float64, hasMax bool) numberRange {
	r := numberRange{min: min, hasMax: hasMax}
	if hasMax {
		r.max = &max
	}
	return r
}

var directiveTable = map[string]directiveCategory{
	// Font, box-capable
	"titlefont": catFontBox, "gchordfont": catFontBox, "composerfont": catFontBox,
	"subtitlefont": catFontBox, "voicefont": catFontBox, "partsfont": catFontBox,
	"textfont": catFontBox, "annotationfont": catFontBox, "historyfont": catFontBox,
	"infofont": catFontBox, "measurefont": catFontBox, "barlabelfont": catFontBox,
	"barnumberfont": catFontBox, "barnumfont": catFontBox,

	// Font, no box
	"tempofont": catFontNoBox, "footerfont": catFontNoBox, "headerfont": catFontNoBox,
	"tripletfont": catFontNoBox, "vocalfont": catFontNoBox, "repeatfont": catFontNoBox,
	"wordsfont": catFontNoBox, "tablabelfont": catFontNoBox, "tabnumberfont": catFontNoBox,
	"tabgracefont": catFontNoBox,

	// Boolean flag
	"bagpipes": catBooleanFlag, "flatbeams": catBooleanFlag, "jazzchords": catBooleanFlag,
	"accentAbove": catBooleanFlag, "germanAlphabet": catBooleanFlag, "landscape": catBooleanFlag,
	"titlecaps": catBooleanFlag, "titleleft": catBooleanFlag, "measurebox": catBooleanFlag,
	"continueall": catBooleanFlag, "begintext": catBooleanFlag, "endtext": catBooleanFlag,
	"beginps": catBooleanFlag, "endps": catBooleanFlag, "font": catBooleanFlag,
	"nobarcheck": catBooleanFlag,

	// Identifier
	"papersize": catIdentifier, "map": catIdentifier, "playtempo": catIdentifier,
	"auquality": catIdentifier, "continuous": catIdentifier, "voicecolor": catIdentifier,

	// BooleanValue
	"graceslurs": catBooleanValue, "staffnonote": catBooleanValue, "printtempo": catBooleanValue,
	"partsbox": catBooleanValue, "freegchord": catBooleanValue,

	// Number, free
	"lineThickness": catNumberFree, "voicescale": catNumberFree, "scale": catNumberFree,
	"fontboxpadding": catNumberFree,

	// Number, constrained
	"stretchlast": catNumberConstrained, "barsperstaff": catNumberConstrained,
	"measurenb": catNumberConstrained, "barnumbers": catNumberConstrained,
	"setbarnb": catNumberConstrained,

	// Position
	"vocal": catPosition, "dynamic": catPosition, "gchord": catPosition,
	"ornament": catPosition, "volume": catPosition,

	// Measurement
	"botmargin": catMeasurement, "botspace": catMeasurement, "composerspace": catMeasurement,
	"indent": catMeasurement, "leftmargin": catMeasurement, "linesep": catMeasurement,
	"musicspace": catMeasurement, "partsspace": catMeasurement, "pageheight": catMeasurement,
	"pagewidth": catMeasurement, "rightmargin": catMeasurement, "stafftopmargin": catMeasurement,
	"staffsep": catMeasurement, "staffwidth": catMeasurement, "subtitlespace": catMeasurement,
	"sysstaffsep": catMeasurement, "systemsep": catMeasurement, "textspace": catMeasurement,
	"titlespace": catMeasurement, "topmargin": catMeasurement, "topspace": catMeasurement,
	"vocalspace": catMeasurement, "wordsspace": catMeasurement, "vskip": catMeasurement,

	// Sep
	"sep": catSep,

	// Annotation
	"text": catAnnotation, "center": catAnnotation, "abc-copyright": catAnnotation,
	"abc-creator": catAnnotation, "abc-edited-by": catAnnotation, "abc-version": catAnnotation,
	"abc-charset": catAnnotation,

	// Newpage
	"newpage": catNewpage,

	// Complex, not implemented
	"setfont": catComplexTODO, "staves": catComplexTODO, "score": catComplexTODO,
	"header": catComplexTODO, "footer": catComplexTODO, "midi": catComplexTODO,
	"percmap": catComplexTODO, "deco": catComplexTODO,
}

// constrainedRanges gives the bound for every catNumberConstrained key.
// barsperstaff and setbarnb are [1,∞); measurenb/barnumbers are [0,∞);
// stretchlast is [0,1].
var constrainedRanges = map[string]numberRange{
	"stretchlast":  rng(0, 1, true),
	"barsperstaff": rng(1, 0, false),
	"measurenb":    rng(0, 0, false),
	"barnumbers":   rng(0, 0, false),
	"setbarnb":     rng(1, 0, false),
}

var measurementUnits = map[string]bool{"": true, "pt": true, "in": true, "cm": true, "mm": true}

var fontModifierKeywords = map[string]bool{
	"bold": true, "italic": true, "underline": true, "box": true,
}
