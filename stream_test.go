package jsonrepair

import (
	"strings"
	"testing"
)

// TestStreamRepairerOneShot feeds the whole input as a single Push, the
// degenerate case of chunking.
func TestStreamRepairerOneShot(t *testing.T) {
	var out strings.Builder
	sr := NewStreamRepairer(&out, DefaultOptions())
	if err := sr.Push([]byte(`{a:1}`)); err != nil {
		t.Fatalf("Push error: %v", err)
	}
	if err := sr.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	want := "{\"a\":1}\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

// TestStreamRepairerChunkBoundaryInvariance is spec P3 at a small scale:
// splitting the same input at every possible byte boundary produces the same
// sequence of repaired root values.
func TestStreamRepairerChunkBoundaryInvariance(t *testing.T) {
	input := `[1,2,3] {a:1} [4,5]`
	want := oneShotStreamOutput(t, input)

	for cut := 1; cut < len(input); cut++ {
		got := splitStreamOutput(t, input, cut)
		if got != want {
			t.Fatalf("cut at %d: got %q, want %q", cut, got, want)
		}
	}
}

func oneShotStreamOutput(t *testing.T, input string) string {
	t.Helper()
	var out strings.Builder
	sr := NewStreamRepairer(&out, DefaultOptions())
	if err := sr.Push([]byte(input)); err != nil {
		t.Fatalf("Push error: %v", err)
	}
	if err := sr.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	return out.String()
}

func splitStreamOutput(t *testing.T, input string, cut int) string {
	t.Helper()
	var out strings.Builder
	sr := NewStreamRepairer(&out, DefaultOptions())
	if err := sr.Push([]byte(input[:cut])); err != nil {
		t.Fatalf("Push(first half) error: %v", err)
	}
	if err := sr.Push([]byte(input[cut:])); err != nil {
		t.Fatalf("Push(second half) error: %v", err)
	}
	if err := sr.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	return out.String()
}

// TestStreamRepairerNDJSONAggregate covers the stream_ndjson_aggregate=true
// path: all root values wrapped into a single JSON array.
func TestStreamRepairerNDJSONAggregate(t *testing.T) {
	var out strings.Builder
	sr := NewStreamRepairer(&out, New(WithStreamNDJSONAggregate(true)))
	if err := sr.Push([]byte(`{a:1} {b:2}`)); err != nil {
		t.Fatalf("Push error: %v", err)
	}
	if err := sr.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	want := `[{"a":1}, {"b":2}]`
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

// TestStreamRepairerNDJSONAggregateEmpty covers the zero-root edge case.
func TestStreamRepairerNDJSONAggregateEmpty(t *testing.T) {
	var out strings.Builder
	sr := NewStreamRepairer(&out, New(WithStreamNDJSONAggregate(true)))
	if err := sr.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if out.String() != "[]" {
		t.Errorf("got %q, want []", out.String())
	}
}

// FuzzStreamRepairerChunking checks that StreamRepairer never errors or
// panics when fed arbitrary inputs split at an arbitrary byte offset.
func FuzzStreamRepairerChunking(f *testing.F) {
	f.Add(`[1,2,3] {a:1}`, 3)
	f.Add(`{"a": "hi"} [1]`, 7)
	f.Add(``, 0)
	f.Fuzz(func(t *testing.T, input string, cut int) {
		if len(input) == 0 {
			cut = 0
		} else {
			cut = ((cut % len(input)) + len(input)) % len(input)
		}
		var out strings.Builder
		sr := NewStreamRepairer(&out, DefaultOptions())
		if err := sr.Push([]byte(input[:cut])); err != nil {
			t.Fatalf("Push(first half) error: %v", err)
		}
		if err := sr.Push([]byte(input[cut:])); err != nil {
			t.Fatalf("Push(second half) error: %v", err)
		}
		if err := sr.Flush(); err != nil {
			t.Fatalf("Flush error: %v", err)
		}
	})
}
