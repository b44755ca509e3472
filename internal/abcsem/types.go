// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package abcsem implements the semantic analyzer: a visitor over an
// internal/abcast tree that materializes typed semantic data, keyed by
// node id, validating each directive and info line against its own
// parameter grammar as it goes.
package abcsem

import "github.com/maloquacious/semver"

// Data is the tagged union stored per node id. Exactly one field named by
// Kind is populated; the rest are zero values.
type Data struct {
	Kind Kind

	Font           FontSpec
	BooleanFlag    bool
	Identifier     string
	BooleanValue   bool
	Number         float64
	Position       PositionValue
	Measurement    MeasurementValue
	Sep            SepValue
	Annotation     string
	Newpage        NewpageValue
	Key            KeySignature
	Meter          MeterInfo
	NoteLength     NoteLengthValue
	Tempo          TempoInfo
	Voice          VoiceInfo
	Title          string
	Composer       string
	Origin         string
	Version        AbcVersion
}

type Kind int

const (
	KindFont Kind = iota
	KindBooleanFlag
	KindIdentifier
	KindBooleanValue
	KindNumber
	KindPosition
	KindMeasurement
	KindSep
	KindAnnotation
	KindNewpage
	KindKeyInfo
	KindMeterInfo
	KindNoteLength
	KindTempoInfo
	KindVoiceInfo
	KindTitleInfo
	KindComposerInfo
	KindOriginInfo
	KindAbcVersion
)

// FontSpec is the payload for every *font directive.
type FontSpec struct {
	Face       string
	UseCurrent bool // "*" — keep the current face, just change size/modifiers
	Size       *float64
	Bold       bool
	Italic     bool
	Underline  bool
	Box        bool
}

type PositionValue struct {
	Kind string // auto | above | below | hidden
}

type MeasurementValue struct {
	Value float64
	Unit  string // "", pt, in, cm, mm
}

type SepValue struct {
	Above, Below, Length *float64
}

type NewpageValue struct {
	Page *int
}

// KeySignature is the payload for K:.
type KeySignature struct {
	Root        string // A-G
	Accidental  string // "", #, b, ^, _, =
	Mode        string // major, minor, dorian, ... "" means major
	Accidentals []string
	Clef        *ClefInfo
}

type ClefInfo struct {
	Name           string // treble, bass, alto, tenor, perc, none
	Line           *int
	OctaveShift    int // +8/-8/+15/-15, 0 if absent
	Middle         string
	Transpose      *int
	StaffLines     *int
	StaffScale     *float64
	Style          string
}

// MeterType classifies M:.
type MeterType int

const (
	MeterCommonTime MeterType = iota
	MeterCutTime
	MeterSpecified
)

type MeterInfo struct {
	Type       MeterType
	Numerators []int // summed compound numerators, e.g. (2+3+2)
	Denominator int
}

type NoteLengthValue struct {
	Numerator   int
	Denominator int
}

type TempoInfo struct {
	BPM        *int
	DurNum     *int
	DurDen     *int
	PreString  string
	PostString string
}

type VoiceInfo struct {
	ID         string
	Properties map[string]string
}

// AbcVersion holds the ABC standard version a source declares with
// %%abc-version (not the tune's own X: number).
type AbcVersion struct {
	Version semver.Version
}
