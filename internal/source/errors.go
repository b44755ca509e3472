// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package source

import "fmt"

// Kind classifies where a diagnostic originated.
type Kind int

const (
	KindScanner Kind = iota
	KindParser
	KindAnalyzer
	KindInterpreter
)

func (k Kind) String() string {
	switch k {
	case KindScanner:
		return "scanner"
	case KindParser:
		return "parser"
	case KindAnalyzer:
		return "analyzer"
	case KindInterpreter:
		return "interpreter"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Position is a 0-based source position.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Record is one diagnostic: a scanner/parser/analyzer/interpreter error
// with enough context to report and to map back to source.
type Record struct {
	Kind     Kind
	Message  string
	Pos      Position
	NodeID   *uint32 // nil if not associated with a specific node
	TokenRef string  // optional lexeme of the offending token, for display
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %s: %s", r.Pos, r.Kind, r.Message)
}

// ErrorReporter buffers diagnostics. It never panics or returns an error;
// errors are data, not control flow. The zero value is not usable; use
// NewErrorReporter.
type ErrorReporter struct {
	records []Record
}

func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{}
}

// Report appends one diagnostic. nodeID may be nil.
func (r *ErrorReporter) Report(kind Kind, message string, pos Position, nodeID *uint32) {
	r.records = append(r.records, Record{
		Kind:    kind,
		Message: message,
		Pos:     pos,
		NodeID:  nodeID,
	})
}

// ReportToken is like Report but also records the offending lexeme.
func (r *ErrorReporter) ReportToken(kind Kind, message string, pos Position, nodeID *uint32, tokenRef string) {
	r.records = append(r.records, Record{
		Kind:     kind,
		Message:  message,
		Pos:      pos,
		NodeID:   nodeID,
		TokenRef: tokenRef,
	})
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *ErrorReporter) HasErrors() bool {
	return len(r.records) > 0
}

// GetErrors returns all diagnostics, in report order. The returned slice
// must not be mutated by callers.
func (r *ErrorReporter) GetErrors() []Record {
	return r.records
}

// CountErrors returns the number of diagnostics recorded.
func (r *ErrorReporter) CountErrors() int {
	return len(r.records)
}

// FirstError returns the first diagnostic recorded, if any.
func (r *ErrorReporter) FirstError() (Record, bool) {
	if len(r.records) == 0 {
		return Record{}, false
	}
	return r.records[0], true
}

// ErrorsByKind filters diagnostics down to one origin.
func (r *ErrorReporter) ErrorsByKind(kind Kind) []Record {
	var out []Record
	for _, rec := range r.records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}
