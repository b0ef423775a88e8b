package jsonrepair

import (
	"bufio"
	"io"
	"strings"
)

// sink is the emission capability described in spec §9: two operations,
// emitChar and emitStr, with two concrete variants — a growable string and a
// buffered writer. Grounded on parsed_serialize.go's habit of wrapping an
// io.Writer and periodically flushing to bound the in-memory tail.
type sink interface {
	emitChar(c byte) error
	emitStr(s string) error
}

// stringSink accumulates output in memory for the string→string API.
type stringSink struct {
	b strings.Builder
}

func newStringSink(sizeHint int) *stringSink {
	s := &stringSink{}
	if sizeHint > 0 {
		s.b.Grow(sizeHint)
	}
	return s
}

func (s *stringSink) emitChar(c byte) error {
	return s.b.WriteByte(c)
}

func (s *stringSink) emitStr(str string) error {
	_, err := s.b.WriteString(str)
	return err
}

func (s *stringSink) String() string { return s.b.String() }

// writerSink wraps an io.Writer in a bufio.Writer, flushing periodically so
// a long-running streaming repair does not hold an unbounded tail in memory
// (spec §9's "buffered writer should periodically flush" note).
type writerSink struct {
	w         *bufio.Writer
	flushEach int
	unflushed int
}

func newWriterSink(w io.Writer) *writerSink {
	return &writerSink{w: bufio.NewWriterSize(w, 64*1024), flushEach: 32 * 1024}
}

func (s *writerSink) emitChar(c byte) error {
	if err := s.w.WriteByte(c); err != nil {
		return err
	}
	s.unflushed++
	return s.maybeFlush()
}

func (s *writerSink) emitStr(str string) error {
	if _, err := s.w.WriteString(str); err != nil {
		return err
	}
	s.unflushed += len(str)
	return s.maybeFlush()
}

func (s *writerSink) maybeFlush() error {
	if s.unflushed < s.flushEach {
		return nil
	}
	s.unflushed = 0
	return s.w.Flush()
}

func (s *writerSink) Flush() error { return s.w.Flush() }

// pythonSeparatorSink wraps another sink, inserting a space after every
// structural ',' and ':' emitted outside of a string literal — the
// streaming counterpart of applyPythonStyleSeparators. emitChar relies on
// the invariant that every quote opening or closing a string literal passes
// through emitChar('"'), never emitStr, so toggling inString on each
// emitChar('"') call exactly tracks string-literal state there.
//
// emitStr cannot rely on that invariant: parseObject stages a whole member
// (key, colon, value, and any nested structure) in a private stringSink and
// flushes it with one emitStr call, so a single emitStr argument can itself
// contain unspaced structural bytes and escaped quotes. emitStr re-scans its
// argument byte-by-byte the same way applyPythonStyleSeparators re-scans a
// full document, using backslash parity (not a bare toggle) to tell an
// escaped quote from a real string boundary, and folds the result back into
// s.inString so a later emitChar/emitStr call picks up the right state.
type pythonSeparatorSink struct {
	inner    sink
	inString bool
}

func newPythonSeparatorSink(inner sink) *pythonSeparatorSink {
	return &pythonSeparatorSink{inner: inner}
}

func (s *pythonSeparatorSink) emitChar(c byte) error {
	if err := s.inner.emitChar(c); err != nil {
		return err
	}
	if c == '"' {
		s.inString = !s.inString
		return nil
	}
	if !s.inString && (c == ',' || c == ':') {
		return s.inner.emitChar(' ')
	}
	return nil
}

func (s *pythonSeparatorSink) emitStr(str string) error {
	var sb strings.Builder
	sb.Grow(len(str) + len(str)/8)
	inString := s.inString
	for i := 0; i < len(str); i++ {
		b := str[i]
		sb.WriteByte(b)
		if b == '"' {
			backslashes := 0
			for j := i - 1; j >= 0 && str[j] == '\\'; j-- {
				backslashes++
			}
			if backslashes%2 == 0 {
				inString = !inString
			}
			continue
		}
		if !inString && (b == ',' || b == ':') {
			sb.WriteByte(' ')
		}
	}
	s.inString = inString
	return s.inner.emitStr(sb.String())
}
