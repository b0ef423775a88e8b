package jsonrepair

import "testing"

func TestTakeNumberSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123, ", "123"},
		{"-4.5}", "-4.5"},
		{"1e10]", "1e10"},
		{"1/3,", "1/3"},
		{"1 // trailing", "1"},
	}
	for _, tc := range tests {
		c := newCursor(tc.in)
		opts := DefaultOptions()
		if got := takeNumberSegment(c, &opts); got != tc.want {
			t.Errorf("takeNumberSegment(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsSuspiciousNumber(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123", false},
		{"-4.5", false},
		{"1e10", false},
		{"1e-10", false},
		{"1/3", true},
		{"1.2.3", true},
		{"12a", true},
		{"1-2", true},
	}
	for _, tc := range tests {
		if got := isSuspiciousNumber(tc.in); got != tc.want {
			t.Errorf("isSuspiciousNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRewriteNumberSegment(t *testing.T) {
	tolerant := DefaultOptions()
	tests := []struct {
		name           string
		opts           *Options
		in             string
		wantText       string
		wantLeadingZero bool
		wantExponent   bool
	}{
		{"leading dot", &tolerant, ".5", "0.5", false, false},
		{"trailing dot", &tolerant, "1.", "1.0", false, false},
		{"incomplete exponent dropped", &tolerant, "1e", "1", false, false},
		{"complete exponent kept", &tolerant, "1e10", "1e10", false, true},
		{"leading zero flagged", &tolerant, "007", "007", true, false},
		{"negative number passthrough", &tolerant, "-42", "-42", false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotText, gotLZ, gotExp := rewriteNumberSegment(tc.in, tc.opts)
			if gotText != tc.wantText || gotLZ != tc.wantLeadingZero || gotExp != tc.wantExponent {
				t.Errorf("rewriteNumberSegment(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tc.in, gotText, gotLZ, gotExp, tc.wantText, tc.wantLeadingZero, tc.wantExponent)
			}
		})
	}
}

// TestRewriteNumberSegmentFlagsGateRewrites is spec P5 at the unit level:
// disabling a tolerance flag disables its specific rewrite.
func TestRewriteNumberSegmentFlagsGateRewrites(t *testing.T) {
	off := DefaultOptions()
	off.NumberToleranceLeadingDot = false
	off.NumberToleranceTrailingDot = false
	off.NumberToleranceIncompleteExponent = false

	if text, _, _ := rewriteNumberSegment(".5", &off); text != ".5" {
		t.Errorf("leading dot rewrite fired despite being disabled: %q", text)
	}
	if text, _, _ := rewriteNumberSegment("1.", &off); text != "1." {
		t.Errorf("trailing dot rewrite fired despite being disabled: %q", text)
	}
	if text, _, _ := rewriteNumberSegment("1e", &off); text != "1e" {
		t.Errorf("incomplete exponent dropped despite tolerance disabled: %q", text)
	}
}
