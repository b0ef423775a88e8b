package jsonrepair

import (
	"errors"
	"testing"
)

func TestQuoteKind(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'"', 1}, {'“', 1}, {'”', 1},
		{'\'', 2}, {'`', 2}, {'‘', 2},
		{'a', 0},
	}
	for _, tc := range tests {
		if got := quoteKind(tc.r); got != tc.want {
			t.Errorf("quoteKind(%q) = %d, want %d", tc.r, got, tc.want)
		}
	}
}

func TestDecodeUnicodeEscapeSurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) encoded as a surrogate pair.
	c := newCursor(`D83D\uDE00 trailing`)
	got, err := decodeUnicodeEscape(c)
	if err != nil {
		t.Fatalf("decodeUnicodeEscape error: %v", err)
	}
	want := "\U0001F600"
	if got != want {
		t.Errorf("decodeUnicodeEscape = %q, want %q", got, want)
	}
}

func TestDecodeUnicodeEscapeIsolatedSurrogateDropped(t *testing.T) {
	c := newCursor(`D800xyz`)
	got, err := decodeUnicodeEscape(c)
	if err != nil {
		t.Fatalf("decodeUnicodeEscape error: %v", err)
	}
	if got != "" {
		t.Errorf("isolated high surrogate should decode to empty, got %q", got)
	}
}

func TestDecodeUnicodeEscapeBMP(t *testing.T) {
	c := newCursor(`00e9rest`)
	got, err := decodeUnicodeEscape(c)
	if err != nil {
		t.Fatalf("decodeUnicodeEscape error: %v", err)
	}
	if got != "é" {
		t.Errorf("decodeUnicodeEscape = %q, want é", got)
	}
}

func TestDecodeUnicodeEscapeMalformedHexErrors(t *testing.T) {
	c := newCursor(`zzzzrest`)
	_, err := decodeUnicodeEscape(c)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != KindInvalidUnicodeEscape {
		t.Fatalf("decodeUnicodeEscape(%q) error = %v, want a KindInvalidUnicodeEscape *ParseError", "zzzzrest", err)
	}
}

func TestEmitJSONStringLiteralEscaping(t *testing.T) {
	tests := []struct {
		in          string
		ensureASCII bool
		want        string
	}{
		{"hello", false, `"hello"`},
		{"a\"b", false, `"a\"b"`},
		{"a\nb", false, `"a\nb"`},
		{"café", false, `"café"`},
		{"café", true, "\"caf\\u00E9\""},
	}
	for _, tc := range tests {
		s := newStringSink(0)
		if err := emitJSONStringLiteral(s, tc.in, tc.ensureASCII); err != nil {
			t.Fatalf("emitJSONStringLiteral error: %v", err)
		}
		if got := s.String(); got != tc.want {
			t.Errorf("emitJSONStringLiteral(%q, ascii=%v) = %q, want %q", tc.in, tc.ensureASCII, got, tc.want)
		}
	}
}

func TestParseQuotedLiteralUnterminatedAtEOF(t *testing.T) {
	c := newCursor(`"hello`)
	got, ok, err := parseQuotedLiteral(c, isValueStopDelim)
	if err != nil {
		t.Fatalf("parseQuotedLiteral error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true even for an unterminated literal at EOF")
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestParseQuotedLiteralImplicitCloseOnNewline(t *testing.T) {
	c := newCursor("\"hello\nworld\"")
	got, ok, err := parseQuotedLiteral(c, isValueStopDelim)
	if err != nil {
		t.Fatalf("parseQuotedLiteral error: %v", err)
	}
	if !ok || got != "hello" {
		t.Errorf("got (%q, %v), want (\"hello\", true)", got, ok)
	}
}

func TestParseQuotedLiteralMalformedUnicodeEscapeErrors(t *testing.T) {
	c := newCursor(`"bad\uZZZZescape"`)
	_, _, err := parseQuotedLiteral(c, isValueStopDelim)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != KindInvalidUnicodeEscape {
		t.Fatalf("parseQuotedLiteral error = %v, want a KindInvalidUnicodeEscape *ParseError", err)
	}
}

func TestIdentThenQuoteLen(t *testing.T) {
	tests := []struct {
		in       string
		wantLen  int
		wantOK   bool
	}{
		{`sic"`, 3, true},
		{`sic `, 0, false},
		{`"sic`, 0, false},
		{``, 0, false},
	}
	for _, tc := range tests {
		n, ok := identThenQuoteLen(tc.in)
		if n != tc.wantLen || ok != tc.wantOK {
			t.Errorf("identThenQuoteLen(%q) = (%d, %v), want (%d, %v)", tc.in, n, ok, tc.wantLen, tc.wantOK)
		}
	}
}

func TestParseStringLiteralValueConcatenation(t *testing.T) {
	out := newStringSink(0)
	c := newCursor(`"he" + /*x*/ 'llo'`)
	opts := DefaultOptions()
	if err := parseStringLiteralValue(c, &opts, out, nil); err != nil {
		t.Fatalf("parseStringLiteralValue error: %v", err)
	}
	if got := out.String(); got != `"hello"` {
		t.Errorf("got %q, want %q", got, `"hello"`)
	}
}

func TestParseStringLiteralValueEmbeddedQuoteContinuation(t *testing.T) {
	out := newStringSink(0)
	c := newCursor(`"lorem "ipsum" sic"`)
	opts := DefaultOptions()
	if err := parseStringLiteralValue(c, &opts, out, nil); err != nil {
		t.Fatalf("parseStringLiteralValue error: %v", err)
	}
	got := out.String()
	want := `"lorem \"ipsum\" sic"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
