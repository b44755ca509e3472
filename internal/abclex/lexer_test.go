// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abclex_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/abctools/abcc/internal/abclex"
	"github.com/abctools/abcc/internal/abctok"
	"github.com/abctools/abcc/internal/source"
)

func typesOf(tokens []abctok.Token) []abctok.Type {
	var out []abctok.Type
	for _, t := range tokens {
		out = append(out, t.Type)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"X:1\nT:Test Tune\nK:C\nABC DEF|GAB c2d2|]\n",
		"X:1\nT:Slip Jig\nM:9/8\nL:1/8\nK:Dmix\nA,BA FED|FAA BAF|\n",
		"X:1\nT:Waltz\nK:G\nV:1\n\"C\"CDE FGA|\nw:here are some-words un-der the notes\n",
	}
	for _, src := range inputs {
		ctx := source.New()
		tokens := abclex.Scan(ctx, []byte(src))
		got := abctok.Render(tokens)
		if got != src {
			t.Errorf("round trip mismatch:\n  want %q\n  got  %q", src, got)
		}
	}
}

func TestScanSimpleTuneHeader(t *testing.T) {
	src := "X:1\nT:Test\nK:C\n"
	ctx := source.New()
	tokens := abclex.Scan(ctx, []byte(src))

	var keys []string
	for _, tok := range tokens {
		if tok.Type == abctok.INFO_KEY {
			keys = append(keys, tok.Lexeme)
		}
	}
	want := []string{"X:", "T:", "K:"}
	if len(keys) != len(want) {
		t.Fatalf("got %d info keys, want %d: %v", len(keys), len(want), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("info key %d: got %q, want %q", i, keys[i], k)
		}
	}
}

func TestScanBarlines(t *testing.T) {
	src := "X:1\nK:C\nABC|DEF||GAB|]\n"
	ctx := source.New()
	tokens := abclex.Scan(ctx, []byte(src))

	var bars []string
	for _, tok := range tokens {
		if tok.Type == abctok.BARLINE {
			bars = append(bars, tok.Lexeme)
		}
	}
	want := []string{"|", "||", "|]"}
	if len(bars) != len(want) {
		t.Fatalf("got %d barlines, want %d: %v", len(bars), len(want), bars)
	}
	for i, w := range want {
		if bars[i] != w {
			t.Errorf("barline %d: got %q, want %q", i, bars[i], w)
		}
	}
}

func TestScanMeterField(t *testing.T) {
	src := "X:1\nM:6/8\nK:C\n"
	ctx := source.New()
	tokens := abclex.Scan(ctx, []byte(src))

	var meterTypes []abctok.Type
	inMeter := false
	for _, tok := range tokens {
		if tok.Type == abctok.INFO_KEY && tok.Lexeme == "M:" {
			inMeter = true
			continue
		}
		if inMeter {
			if tok.Type == abctok.EOL {
				break
			}
			meterTypes = append(meterTypes, tok.Type)
		}
	}
	want := []abctok.Type{abctok.METER_NUMBER, abctok.METER_SEPARATOR, abctok.METER_NUMBER}
	if len(meterTypes) != len(want) {
		t.Fatalf("got %v, want %v", meterTypes, want)
	}
	for i := range want {
		if meterTypes[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, meterTypes[i], want[i])
		}
	}
}

func TestScanInlineField(t *testing.T) {
	src := "X:1\nK:C\nAB [K:Bb] CD|\n"
	ctx := source.New()
	tokens := abclex.Scan(ctx, []byte(src))

	var opened, closed bool
	for _, tok := range tokens {
		if tok.Type == abctok.INLINE_FIELD_OPEN {
			opened = true
		}
		if tok.Type == abctok.INLINE_FIELD_CLOSE {
			closed = true
		}
	}
	if !opened || !closed {
		t.Fatalf("expected both inline field delimiters, opened=%v closed=%v", opened, closed)
	}
}

func TestScanInvalidInputIsReported(t *testing.T) {
	src := "X:1\nK:C\nAB\x01CD|\n"
	ctx := source.New()
	_ = abclex.Scan(ctx, []byte(src))
	if !ctx.Errors().HasErrors() {
		t.Fatalf("expected scanner to report an error for invalid input")
	}
}

func TestScanIsDeterministic(t *testing.T) {
	src := "X:1\nT:Test Tune\nQ:1/4=120\nK:C\nA,B,C,D,|[CEG]2 z4|\n"
	tokens1 := abclex.Scan(source.New(), []byte(src))
	tokens2 := abclex.Scan(source.New(), []byte(src))
	if diff := deep.Equal(tokens1, tokens2); diff != nil {
		for _, d := range diff {
			t.Errorf("rescan mismatch: %s", d)
		}
	}
}

func TestInvalidInfoContentIsCollected(t *testing.T) {
	src := "X:1\nM:abc\nK:C\nCD|\n"
	ctx := source.New()
	tokens := abclex.Scan(ctx, []byte(src))

	var invalid *abctok.Token
	for i := range tokens {
		if tokens[i].Type == abctok.INVALID_INFO {
			invalid = &tokens[i]
		}
	}
	if invalid == nil {
		t.Fatal("expected an INVALID_INFO token for the bad meter content")
	}
	if invalid.Lexeme != "abc" {
		t.Errorf("invalid lexeme = %q, want the whole bad field", invalid.Lexeme)
	}
	if !ctx.Errors().HasErrors() {
		t.Error("expected a scanner error for the invalid field content")
	}
	if got := abctok.Render(tokens); got != src {
		t.Errorf("round trip mismatch: got %q", got)
	}
}

func TestVoicePropertyValues(t *testing.T) {
	src := "X:1\nV:T1 name=\"Tenor I\" clef=treble\nK:C\nCD|\n"
	ctx := source.New()
	tokens := abclex.Scan(ctx, []byte(src))

	var keys, values []string
	for _, tok := range tokens {
		switch tok.Type {
		case abctok.VOICE_PROP_KEY:
			keys = append(keys, tok.Lexeme)
		case abctok.VOICE_PROP_VALUE:
			values = append(values, tok.Lexeme)
		}
	}
	wantKeys := []string{"name", "clef"}
	wantValues := []string{"\"Tenor I\"", "treble"}
	if len(keys) != len(wantKeys) || len(values) != len(wantValues) {
		t.Fatalf("keys=%v values=%v, want %v / %v", keys, values, wantKeys, wantValues)
	}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] {
			t.Errorf("key %d = %q, want %q", i, keys[i], wantKeys[i])
		}
	}
	for i := range wantValues {
		if values[i] != wantValues[i] {
			t.Errorf("value %d = %q, want %q", i, values[i], wantValues[i])
		}
	}
}

func TestScanDecorationAndAnnotation(t *testing.T) {
	src := "X:1\nK:C\n\"Allegro\" !f!C D\n"
	ctx := source.New()
	tokens := abclex.Scan(ctx, []byte(src))

	var sawAnnotation, sawDecoration bool
	for _, tok := range tokens {
		if tok.Type == abctok.ANNOTATION {
			sawAnnotation = true
		}
		if tok.Type == abctok.DECORATION {
			sawDecoration = true
		}
	}
	if !sawAnnotation || !sawDecoration {
		t.Fatalf("expected annotation and decoration tokens, got annotation=%v decoration=%v", sawAnnotation, sawDecoration)
	}
}
