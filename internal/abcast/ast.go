// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package abcast defines the AST node taxonomy produced by internal/abcparse:
// a sum type over Expr, reached through a single accept/visit method per
// node kind.
package abcast

import "github.com/abctools/abcc/internal/abctok"

// Kind identifies the concrete type behind an Expr.
type Kind int

const (
	KindFileStructure Kind = iota
	KindFileHeader
	KindTune
	KindTuneHeader
	KindTuneBody
	KindSystem
	KindDirective
	KindInfoLine
	KindComment
	KindLyricLine
	KindLyricSection
	KindPitch
	KindNote
	KindRest
	KindMultiMeasureRest
	KindRhythm
	KindChord
	KindBarLine
	KindGraceGroup
	KindTuplet
	KindDecoration
	KindAnnotation
	KindSymbol
	KindYSpacer
	KindInlineField
	KindVoiceOverlay
	KindBeam
	KindKV
	KindBinary
	KindGrouping
	KindRational
	KindMeasurement
	KindAbsolutePitch
	KindErrorExpr
)

var kindNames = [...]string{
	"FileStructure", "FileHeader", "Tune", "TuneHeader", "TuneBody", "System",
	"Directive", "InfoLine", "Comment", "LyricLine", "LyricSection",
	"Pitch", "Note", "Rest", "MultiMeasureRest", "Rhythm", "Chord", "BarLine",
	"GraceGroup", "Tuplet", "Decoration", "Annotation", "Symbol", "YSpacer",
	"InlineField", "VoiceOverlay", "Beam",
	"KV", "Binary", "Grouping", "Rational", "Measurement", "AbsolutePitch",
	"ErrorExpr",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Expr is the common interface over every AST node. Every node carries the
// monotonic id issued by source.Context when it was created; parents own
// their children exclusively, so there are never cycles or shared nodes.
type Expr interface {
	ID() uint32
	Kind() Kind
	Accept(v Visitor) any
}

// base is embedded by every concrete node to supply ID()/Kind().
type base struct {
	id   uint32
	kind Kind
}

func (b base) ID() uint32 { return b.id }
func (b base) Kind() Kind { return b.kind }

func newBase(id uint32, k Kind) base { return base{id: id, kind: k} }

// Visitor enumerates one method per node kind, plus VisitToken for tokens
// that appear as direct, unwrapped children (free tokens, punctuation).
type Visitor interface {
	VisitFileStructure(*FileStructure) any
	VisitFileHeader(*FileHeader) any
	VisitTune(*Tune) any
	VisitTuneHeader(*TuneHeader) any
	VisitTuneBody(*TuneBody) any
	VisitSystem(*System) any
	VisitDirective(*Directive) any
	VisitInfoLine(*InfoLine) any
	VisitComment(*Comment) any
	VisitLyricLine(*LyricLine) any
	VisitLyricSection(*LyricSection) any
	VisitPitch(*Pitch) any
	VisitNote(*Note) any
	VisitRest(*Rest) any
	VisitMultiMeasureRest(*MultiMeasureRest) any
	VisitRhythm(*Rhythm) any
	VisitChord(*Chord) any
	VisitBarLine(*BarLine) any
	VisitGraceGroup(*GraceGroup) any
	VisitTuplet(*Tuplet) any
	VisitDecoration(*Decoration) any
	VisitAnnotation(*Annotation) any
	VisitSymbol(*Symbol) any
	VisitYSpacer(*YSpacer) any
	VisitInlineField(*InlineField) any
	VisitVoiceOverlay(*VoiceOverlay) any
	VisitBeam(*Beam) any
	VisitKV(*KV) any
	VisitBinary(*Binary) any
	VisitGrouping(*Grouping) any
	VisitRational(*Rational) any
	VisitMeasurement(*Measurement) any
	VisitAbsolutePitch(*AbsolutePitch) any
	VisitErrorExpr(*ErrorExpr) any
	VisitToken(abctok.Token) any
}

// ---- structural -------------------------------------------------------------

// TuneOrToken is either a *Tune or a free abctok.Token living directly under
// FileStructure (e.g. stray blank lines between tunes).
type TuneOrToken struct {
	Tune  *Tune
	Token *abctok.Token
}

type FileStructure struct {
	base
	Header *FileHeader
	Items  []TuneOrToken
}

func NewFileStructure(id uint32) *FileStructure {
	return &FileStructure{base: newBase(id, KindFileStructure)}
}
func (n *FileStructure) Accept(v Visitor) any { return v.VisitFileStructure(n) }

// HeaderItem is one of the mixed contents of a file header.
type HeaderItem struct {
	InfoLine  *InfoLine
	Comment   *Comment
	Directive *Directive
}

type FileHeader struct {
	base
	Items []HeaderItem
}

func NewFileHeader(id uint32) *FileHeader { return &FileHeader{base: newBase(id, KindFileHeader)} }
func (n *FileHeader) Accept(v Visitor) any { return v.VisitFileHeader(n) }

type Tune struct {
	base
	Header *TuneHeader
	Body   *TuneBody
}

func NewTune(id uint32) *Tune             { return &Tune{base: newBase(id, KindTune)} }
func (n *Tune) Accept(v Visitor) any      { return v.VisitTune(n) }

type TuneHeader struct {
	base
	Items  []HeaderItem
	Voices []string // V: ids, in encounter order, duplicates preserved
}

func NewTuneHeader(id uint32) *TuneHeader { return &TuneHeader{base: newBase(id, KindTuneHeader)} }
func (n *TuneHeader) Accept(v Visitor) any { return v.VisitTuneHeader(n) }

type TuneBody struct {
	base
	Systems []*System
}

func NewTuneBody(id uint32) *TuneBody      { return &TuneBody{base: newBase(id, KindTuneBody)} }
func (n *TuneBody) Accept(v Visitor) any   { return v.VisitTuneBody(n) }

// SystemItem is one element of a system: a music element, an interleaved
// info line, a comment, or a whitespace boundary. Boundary items carry no
// payload; they exist only so the beam grouper knows where a run of
// beamable elements must break.
type SystemItem struct {
	Music    Expr
	InfoLine *InfoLine
	Comment  *Comment
	Boundary bool
}

type System struct {
	base
	Items []SystemItem
}

func NewSystem(id uint32) *System     { return &System{base: newBase(id, KindSystem)} }
func (n *System) Accept(v Visitor) any { return v.VisitSystem(n) }

// ---- directives & metadata --------------------------------------------------

type Directive struct {
	base
	Key    abctok.Token
	Values []abctok.Token
}

func NewDirective(id uint32) *Directive { return &Directive{base: newBase(id, KindDirective)} }
func (n *Directive) Accept(v Visitor) any { return v.VisitDirective(n) }

// InfoLine carries the raw value tokens (for round-trip, and for the
// analyzer, which re-walks them per field) and, for L:, a parsed Rational
// sub-expression built by the parser.
type InfoLine struct {
	base
	Key    abctok.Token
	Values []abctok.Token
	Sub    Expr // non-nil only for an L: line with a numerator
}

func NewInfoLine(id uint32) *InfoLine   { return &InfoLine{base: newBase(id, KindInfoLine)} }
func (n *InfoLine) Accept(v Visitor) any { return v.VisitInfoLine(n) }

type Comment struct {
	base
	Token abctok.Token
}

func NewComment(id uint32) *Comment    { return &Comment{base: newBase(id, KindComment)} }
func (n *Comment) Accept(v Visitor) any { return v.VisitComment(n) }

type LyricLine struct {
	base
	Key    abctok.Token
	Tokens []abctok.Token
}

func NewLyricLine(id uint32) *LyricLine  { return &LyricLine{base: newBase(id, KindLyricLine)} }
func (n *LyricLine) Accept(v Visitor) any { return v.VisitLyricLine(n) }

type LyricSection struct {
	base
	Lines []*LyricLine
}

func NewLyricSection(id uint32) *LyricSection {
	return &LyricSection{base: newBase(id, KindLyricSection)}
}
func (n *LyricSection) Accept(v Visitor) any { return v.VisitLyricSection(n) }

// ---- musical atoms -----------------------------------------------------------

type Pitch struct {
	base
	Accidental *abctok.Token
	Letter     abctok.Token
	Octave     []abctok.Token // run of OCTAVE_UP or a single OCTAVE_DOWN-as-COMMA token
}

func NewPitch(id uint32) *Pitch       { return &Pitch{base: newBase(id, KindPitch)} }
func (n *Pitch) Accept(v Visitor) any { return v.VisitPitch(n) }

type Note struct {
	base
	LeadingTie  *abctok.Token
	Pitch       *Pitch
	Rest        *Rest
	Rhythm      *Rhythm
	TrailingTie *abctok.Token
}

func NewNote(id uint32) *Note        { return &Note{base: newBase(id, KindNote)} }
func (n *Note) Accept(v Visitor) any { return v.VisitNote(n) }

type Rest struct {
	base
	Token abctok.Token
}

func NewRest(id uint32) *Rest        { return &Rest{base: newBase(id, KindRest)} }
func (n *Rest) Accept(v Visitor) any { return v.VisitRest(n) }

type MultiMeasureRest struct {
	base
	Token Rest
	Count *Rhythm
}

func NewMultiMeasureRest(id uint32) *MultiMeasureRest {
	return &MultiMeasureRest{base: newBase(id, KindMultiMeasureRest)}
}
func (n *MultiMeasureRest) Accept(v Visitor) any { return v.VisitMultiMeasureRest(n) }

type Rhythm struct {
	base
	Numerator   *abctok.Token
	Separator   *abctok.Token
	Denominator *abctok.Token
	Broken      *abctok.Token
}

func NewRhythm(id uint32) *Rhythm      { return &Rhythm{base: newBase(id, KindRhythm)} }
func (n *Rhythm) Accept(v Visitor) any { return v.VisitRhythm(n) }

type Chord struct {
	base
	Notes       []Expr // *Note or *Annotation
	Rhythm      *Rhythm
	TrailingTie *abctok.Token
}

func NewChord(id uint32) *Chord       { return &Chord{base: newBase(id, KindChord)} }
func (n *Chord) Accept(v Visitor) any { return v.VisitChord(n) }

type BarLine struct {
	base
	Bars    []abctok.Token
	Repeats []abctok.Token
}

func NewBarLine(id uint32) *BarLine    { return &BarLine{base: newBase(id, KindBarLine)} }
func (n *BarLine) Accept(v Visitor) any { return v.VisitBarLine(n) }

type GraceGroup struct {
	base
	Acciaccatura bool
	Notes        []*Note
}

func NewGraceGroup(id uint32) *GraceGroup {
	return &GraceGroup{base: newBase(id, KindGraceGroup)}
}
func (n *GraceGroup) Accept(v Visitor) any { return v.VisitGraceGroup(n) }

type Tuplet struct {
	base
	P, Q, R *abctok.Token
}

func NewTuplet(id uint32) *Tuplet      { return &Tuplet{base: newBase(id, KindTuplet)} }
func (n *Tuplet) Accept(v Visitor) any { return v.VisitTuplet(n) }

type Decoration struct {
	base
	Token abctok.Token
}

func NewDecoration(id uint32) *Decoration {
	return &Decoration{base: newBase(id, KindDecoration)}
}
func (n *Decoration) Accept(v Visitor) any { return v.VisitDecoration(n) }

type Annotation struct {
	base
	Token abctok.Token
}

func NewAnnotation(id uint32) *Annotation {
	return &Annotation{base: newBase(id, KindAnnotation)}
}
func (n *Annotation) Accept(v Visitor) any { return v.VisitAnnotation(n) }

type Symbol struct {
	base
	Token abctok.Token
}

func NewSymbol(id uint32) *Symbol     { return &Symbol{base: newBase(id, KindSymbol)} }
func (n *Symbol) Accept(v Visitor) any { return v.VisitSymbol(n) }

type YSpacer struct {
	base
	Token abctok.Token
}

func NewYSpacer(id uint32) *YSpacer    { return &YSpacer{base: newBase(id, KindYSpacer)} }
func (n *YSpacer) Accept(v Visitor) any { return v.VisitYSpacer(n) }

type InlineField struct {
	base
	Field *InfoLine
}

func NewInlineField(id uint32) *InlineField {
	return &InlineField{base: newBase(id, KindInlineField)}
}
func (n *InlineField) Accept(v Visitor) any { return v.VisitInlineField(n) }

type VoiceOverlay struct {
	base
	Token abctok.Token
}

func NewVoiceOverlay(id uint32) *VoiceOverlay {
	return &VoiceOverlay{base: newBase(id, KindVoiceOverlay)}
}
func (n *VoiceOverlay) Accept(v Visitor) any { return v.VisitVoiceOverlay(n) }

// Beam wraps a contiguous, beamable run of music elements produced by the
// post-pass in internal/abcbeam. Children keep their own ids.
type Beam struct {
	base
	Children []Expr
}

func NewBeam(id uint32) *Beam         { return &Beam{base: newBase(id, KindBeam)} }
func (n *Beam) Accept(v Visitor) any  { return v.VisitBeam(n) }

// ---- sub-expressions reused inside info lines --------------------------------

type KV struct {
	base
	Key   abctok.Token
	Op    abctok.Token
	Value Expr
}

func NewKV(id uint32) *KV            { return &KV{base: newBase(id, KindKV)} }
func (n *KV) Accept(v Visitor) any    { return v.VisitKV(n) }

type Binary struct {
	base
	Left  Expr
	Op    abctok.Token
	Right Expr
}

func NewBinary(id uint32) *Binary     { return &Binary{base: newBase(id, KindBinary)} }
func (n *Binary) Accept(v Visitor) any { return v.VisitBinary(n) }

type Grouping struct {
	base
	Open  abctok.Token
	Inner Expr
	Close abctok.Token
}

func NewGrouping(id uint32) *Grouping { return &Grouping{base: newBase(id, KindGrouping)} }
func (n *Grouping) Accept(v Visitor) any { return v.VisitGrouping(n) }

type Rational struct {
	base
	Numerator   abctok.Token
	Denominator *abctok.Token
}

func NewRational(id uint32) *Rational { return &Rational{base: newBase(id, KindRational)} }
func (n *Rational) Accept(v Visitor) any { return v.VisitRational(n) }

type Measurement struct {
	base
	Number abctok.Token
	Unit   *abctok.Token
}

func NewMeasurement(id uint32) *Measurement {
	return &Measurement{base: newBase(id, KindMeasurement)}
}
func (n *Measurement) Accept(v Visitor) any { return v.VisitMeasurement(n) }

// AbsolutePitch is a fully-resolved pitch spelling used inside K:'s explicit
// accidental list, e.g. the "^c" in "K:C ^c".
type AbsolutePitch struct {
	base
	Accidental *abctok.Token
	Letter     abctok.Token
}

func NewAbsolutePitch(id uint32) *AbsolutePitch {
	return &AbsolutePitch{base: newBase(id, KindAbsolutePitch)}
}
func (n *AbsolutePitch) Accept(v Visitor) any { return v.VisitAbsolutePitch(n) }

// ---- recovery -----------------------------------------------------------------

// ErrorExpr wraps a run of tokens the parser could not place into the
// grammar, along with the expected category and a human-readable message.
type ErrorExpr struct {
	base
	Tokens   []abctok.Token
	Expected string
	Message  string
}

func NewErrorExpr(id uint32) *ErrorExpr { return &ErrorExpr{base: newBase(id, KindErrorExpr)} }
func (n *ErrorExpr) Accept(v Visitor) any { return v.VisitErrorExpr(n) }
