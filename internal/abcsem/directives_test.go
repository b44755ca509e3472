// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcsem_test

import (
	"fmt"
	"testing"

	"github.com/abctools/abcc/internal/abcast"
	"github.com/abctools/abcc/internal/abcsem"
	"github.com/abctools/abcc/internal/source"
)

// analyzeDirective compiles a single-directive file and returns the
// directive node, its semantic data (if any), and the context.
func analyzeDirective(t *testing.T, line string) (*abcast.Directive, abcsem.Data, bool, *source.Context) {
	t.Helper()
	src := fmt.Sprintf("%s\n\nX:1\nK:C\nCD|\n", line)
	fs, data, ctx := compile(src)
	if fs.Header == nil {
		t.Fatalf("%q: no file header parsed", line)
	}
	for _, item := range fs.Header.Items {
		if item.Directive != nil {
			d, ok := data.Get(item.Directive.ID())
			return item.Directive, d, ok, ctx
		}
	}
	t.Fatalf("%q: no directive parsed", line)
	return nil, abcsem.Data{}, false, nil
}

func TestFontStarSizeFormat(t *testing.T) {
	_, d, ok, ctx := analyzeDirective(t, "%%titlefont * 14 box")
	if !ok {
		t.Fatalf("no semantic data: %v", ctx.Errors().GetErrors())
	}
	if !d.Font.UseCurrent {
		t.Error("expected UseCurrent for the '*' format")
	}
	if d.Font.Size == nil || *d.Font.Size != 14 {
		t.Errorf("size = %v, want 14", d.Font.Size)
	}
	if !d.Font.Box {
		t.Error("expected box")
	}
}

func TestFontSizeOnlyFormat(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%gchordfont 12")
	if !ok {
		t.Fatal("no semantic data")
	}
	if d.Font.Size == nil || *d.Font.Size != 12 {
		t.Errorf("size = %v, want 12", d.Font.Size)
	}
	if d.Font.Face != "" || d.Font.UseCurrent {
		t.Errorf("unexpected face %q / UseCurrent %v", d.Font.Face, d.Font.UseCurrent)
	}
}

func TestFontFaceWithModifiers(t *testing.T) {
	_, d, ok, ctx := analyzeDirective(t, "%%composerfont Times-Roman utf8 12 bold italic")
	if !ok {
		t.Fatalf("no semantic data: %v", ctx.Errors().GetErrors())
	}
	if d.Font.Face != "Times-Roman" {
		t.Errorf("face = %q, want Times-Roman", d.Font.Face)
	}
	if d.Font.Size == nil || *d.Font.Size != 12 {
		t.Errorf("size = %v, want 12", d.Font.Size)
	}
	if !d.Font.Bold || !d.Font.Italic {
		t.Errorf("bold=%v italic=%v, want both", d.Font.Bold, d.Font.Italic)
	}
}

func TestFontBoxRejectedOnNoBoxDirective(t *testing.T) {
	_, _, _, ctx := analyzeDirective(t, "%%tempofont 12 box")
	if !ctx.Errors().HasErrors() {
		t.Fatal("expected an error: box is not permitted on tempofont")
	}
}

func TestBooleanFlagRejectsParams(t *testing.T) {
	_, _, ok, ctx := analyzeDirective(t, "%%bagpipes yes")
	if ok {
		t.Error("expected no semantic data for a flag with parameters")
	}
	if !ctx.Errors().HasErrors() {
		t.Error("expected a takes-no-parameters error")
	}
}

func TestBooleanFlagSet(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%flatbeams")
	if !ok || !d.BooleanFlag {
		t.Fatalf("flag not recorded: ok=%v data=%#v", ok, d)
	}
}

func TestIdentifierDirective(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%papersize A4")
	if !ok || d.Identifier != "A4" {
		t.Fatalf("identifier = %q ok=%v, want A4", d.Identifier, ok)
	}
}

func TestBooleanValueVariants(t *testing.T) {
	for raw, want := range map[string]bool{"true": true, "1": true, "false": false, "0": false} {
		_, d, ok, _ := analyzeDirective(t, "%%graceslurs "+raw)
		if !ok || d.BooleanValue != want {
			t.Errorf("graceslurs %s: got %v ok=%v, want %v", raw, d.BooleanValue, ok, want)
		}
	}
	_, _, ok, ctx := analyzeDirective(t, "%%graceslurs maybe")
	if ok || !ctx.Errors().HasErrors() {
		t.Error("expected an invalid-boolean error")
	}
}

func TestConstrainedNumberInRange(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%stretchlast 0.7")
	if !ok || d.Number != 0.7 {
		t.Fatalf("number = %v ok=%v, want 0.7", d.Number, ok)
	}
}

func TestConstrainedNumberBelowMinimum(t *testing.T) {
	_, _, ok, ctx := analyzeDirective(t, "%%barsperstaff 0")
	if ok {
		t.Error("expected no semantic data for an out-of-range number")
	}
	if !ctx.Errors().HasErrors() {
		t.Error("expected a below-minimum error")
	}
}

func TestPositionDirective(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%dynamic above")
	if !ok || d.Position.Kind != "above" {
		t.Fatalf("position = %q ok=%v, want above", d.Position.Kind, ok)
	}
	_, _, ok, ctx := analyzeDirective(t, "%%dynamic sideways")
	if ok || !ctx.Errors().HasErrors() {
		t.Error("expected an invalid-position error")
	}
}

func TestMeasurementWithUnit(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%leftmargin 1.8cm")
	if !ok {
		t.Fatal("no semantic data")
	}
	if d.Measurement.Value != 1.8 || d.Measurement.Unit != "cm" {
		t.Errorf("measurement = %v%s, want 1.8cm", d.Measurement.Value, d.Measurement.Unit)
	}
}

func TestMeasurementUnitless(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%staffsep 46")
	if !ok || d.Measurement.Value != 46 || d.Measurement.Unit != "" {
		t.Fatalf("measurement = %#v ok=%v, want 46 with no unit", d.Measurement, ok)
	}
}

func TestMeasurementBadUnit(t *testing.T) {
	_, _, ok, ctx := analyzeDirective(t, "%%topmargin 2furlongs")
	if ok || !ctx.Errors().HasErrors() {
		t.Error("expected an invalid-measurement error")
	}
}

func TestSepUpToThreeNumbers(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%sep 1 2 3")
	if !ok {
		t.Fatal("no semantic data")
	}
	if d.Sep.Above == nil || *d.Sep.Above != 1 ||
		d.Sep.Below == nil || *d.Sep.Below != 2 ||
		d.Sep.Length == nil || *d.Sep.Length != 3 {
		t.Errorf("sep = %#v, want 1/2/3", d.Sep)
	}
}

func TestAnnotationJoinsWithSingleSpaces(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%abc-copyright  2025   Some  Person")
	if !ok {
		t.Fatal("no semantic data")
	}
	if d.Annotation != "2025 Some Person" {
		t.Errorf("annotation = %q, want single-space joined text", d.Annotation)
	}
}

func TestNewpageOptionalNumber(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%newpage")
	if !ok || d.Newpage.Page != nil {
		t.Fatalf("newpage = %#v ok=%v, want no page number", d.Newpage, ok)
	}
	_, d, ok, _ = analyzeDirective(t, "%%newpage 3")
	if !ok || d.Newpage.Page == nil || *d.Newpage.Page != 3 {
		t.Fatalf("newpage = %#v ok=%v, want page 3", d.Newpage, ok)
	}
}

func TestReservedDirectivesReportNotImplemented(t *testing.T) {
	for _, name := range []string{"setfont", "staves", "score", "header", "footer", "midi", "percmap", "deco"} {
		_, _, ok, ctx := analyzeDirective(t, "%%"+name+" whatever")
		if ok {
			t.Errorf("%s: expected no semantic data", name)
		}
		if !ctx.Errors().HasErrors() {
			t.Errorf("%s: expected a not-implemented error", name)
		}
	}
}

func TestUnknownDirectiveReported(t *testing.T) {
	_, _, ok, ctx := analyzeDirective(t, "%%nosuchdirective 1")
	if ok || !ctx.Errors().HasErrors() {
		t.Error("expected an unknown-directive error")
	}
}

// Every valid representative of every dispatch-table category yields a
// semantic-data entry for its node.
func TestAnalyzerCoverageAcrossCategories(t *testing.T) {
	valid := []string{
		"%%titlefont Helvetica 16",
		"%%tempofont 12",
		"%%bagpipes",
		"%%papersize letter",
		"%%graceslurs true",
		"%%scale 0.9",
		"%%stretchlast 1",
		"%%vocal below",
		"%%pagewidth 21cm",
		"%%sep 10 10 80",
		"%%text free form text",
		"%%newpage",
	}
	for _, line := range valid {
		_, _, ok, ctx := analyzeDirective(t, line)
		if !ok {
			t.Errorf("%q: expected a semantic-data entry; errors: %v", line, ctx.Errors().GetErrors())
		}
	}
}

func TestAbcVersionDirective(t *testing.T) {
	_, d, ok, _ := analyzeDirective(t, "%%abc-version 2.1")
	if !ok {
		t.Fatal("no semantic data")
	}
	if d.Version.Version.Major != 2 || d.Version.Version.Minor != 1 {
		t.Errorf("version = %v, want 2.1", d.Version.Version)
	}
}
