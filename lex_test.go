package jsonrepair

import "testing"

func TestSkipWhitespaceAndComments(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		in   string
		want string // remaining input after skipping
	}{
		{"spaces and tabs", DefaultOptions(), "  \t\n{a:1}", "{a:1}"},
		{"line comment", DefaultOptions(), "// hi\n{a:1}", "{a:1}"},
		{"block comment", DefaultOptions(), "/* hi */{a:1}", "{a:1}"},
		{"unterminated block comment consumes to end", DefaultOptions(), "/* hi", ""},
		{"hash comment tolerated", DefaultOptions(), "# hi\n{a:1}", "{a:1}"},
		{"hash comment not tolerated", New(WithTolerateHashComments(false)), "# hi\n{a:1}", "# hi\n{a:1}"},
		{"mixed runs", DefaultOptions(), " // a\n /* b */ # c\n{a:1}", "{a:1}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newCursor(tc.in)
			skipWhitespaceAndComments(c, &tc.opts)
			if c.rest() != tc.want {
				t.Errorf("rest() = %q, want %q", c.rest(), tc.want)
			}
		})
	}
}

func TestJSONPPrefixLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"cb({a:1})", 3},
		{"  cb (  {a:1})", 6},
		{"{a:1}", 0},
		{"", 0},
		{"cb", 0},
	}
	for _, tc := range tests {
		if got := jsonpPrefixLen(tc.in); got != tc.want {
			t.Errorf("jsonpPrefixLen(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFenceOpenLangNewlineLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"```json\n{a:1}", 8},
		{"```\n{a:1}", 4},
		{"```{a:1}", 3},
		{"{a:1}", 0},
	}
	for _, tc := range tests {
		if got := fenceOpenLangNewlineLen(tc.in); got != tc.want {
			t.Errorf("fenceOpenLangNewlineLen(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTakeIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"true,", "true"},
		{"$foo bar", "$foo"},
		{"_x9(", "_x9"},
		{"123", ""},
		{"", ""},
	}
	for _, tc := range tests {
		c := newCursor(tc.in)
		if got := takeIdent(c); got != tc.want {
			t.Errorf("takeIdent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSkipWordMarkers(t *testing.T) {
	c := newCursor("COMMENT actual {a:1}")
	skipWordMarkers(c, []string{"COMMENT"})
	if c.rest() != " actual {a:1}" {
		t.Errorf("rest() = %q", c.rest())
	}
}
