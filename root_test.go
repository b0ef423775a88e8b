package jsonrepair

import "testing"

func TestStripJSONPWrapper(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`cb({"a":1});`, `{"a":1}`},
		{`cb({"a":1})`, `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{`callback( [1,2] )`, ` [1,2] `},
	}
	for _, tc := range tests {
		if got := stripJSONPWrapper(tc.in); got != tc.want {
			t.Errorf("stripJSONPWrapper(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLooksLikeValueStart(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"{a:1}", true},
		{"[1,2]", true},
		{`"hi"`, true},
		{"true", true},
		{"True", true},
		{"-5", true},
		{"5", true},
		{"banana", false},
		{"", false},
	}
	for _, tc := range tests {
		c := newCursor(tc.in)
		if got := looksLikeValueStart(c); got != tc.want {
			t.Errorf("looksLikeValueStart(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestExtractFencedBlocks(t *testing.T) {
	in := "prose\n```json\n{\"a\":1}\n```\nmore prose\n```\n[1,2]\n```\n"
	got := extractFencedBlocks(in)
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2: %#v", len(got), got)
	}
	if got[0] != "{\"a\":1}\n" {
		t.Errorf("got[0] = %q", got[0])
	}
	if got[1] != "[1,2]\n" {
		t.Errorf("got[1] = %q", got[1])
	}
}

func TestExtractFencedBlocksNone(t *testing.T) {
	if got := extractFencedBlocks(`{"a":1}`); got != nil {
		t.Errorf("got %#v, want nil", got)
	}
}

func TestApplyPythonStyleSeparators(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1,"b":2}`, `{"a": 1, "b": 2}`},
		{`["a:b","c,d"]`, `["a:b", "c,d"]`},
		{`{}`, `{}`},
	}
	for _, tc := range tests {
		if got := applyPythonStyleSeparators(tc.in); got != tc.want {
			t.Errorf("applyPythonStyleSeparators(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRepairDocumentNarrativePrefix(t *testing.T) {
	opts := DefaultOptions()
	got, err := Repair("Sure, here is the JSON you asked for:\n{a:1}", opts)
	if err != nil {
		t.Fatalf("Repair error: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("got %q, want %q", got, `{"a":1}`)
	}
}

func TestRepairDocumentEmptyInput(t *testing.T) {
	got, err := Repair("", DefaultOptions())
	if err != nil {
		t.Fatalf("Repair error: %v", err)
	}
	if got != "null" {
		t.Errorf("got %q, want null", got)
	}
}

func TestRepairDocumentFenceDisabled(t *testing.T) {
	opts := New(WithFencedCodeBlocks(false))
	got, err := Repair("here you go: {a:1} (end)", opts)
	if err != nil {
		t.Fatalf("Repair error: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("got %q, want %q", got, `{"a":1}`)
	}
}
