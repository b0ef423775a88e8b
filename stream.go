package jsonrepair

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/cpuid/v2"
)

// StreamRepairer implements the chunk-streaming driver of spec §5/§9 (C5):
// push() accepts input as it arrives, scans for complete top-level root
// boundaries using a small ASCII-only state machine, repairs each complete
// span with the regular (non-streaming) driver, and writes it out — keeping
// at most one in-flight value's worth of bytes buffered (spec I5: "the
// streaming buffer is O(size of the largest in-flight value)").
//
// The boundary scanner itself only tracks enough state to find where a
// value begins and ends (brace/bracket depth, string/comment mode); it is
// deliberately simpler than the full tolerant grammar in structural.go —
// every extracted span is still handed to the full repairDocument driver,
// so unquoted barewords, fancy quotes, Python keywords, and fenced blocks
// that lie within one span are repaired exactly as in the non-streaming
// path. Grounded on simdjson.go's ParseNDStream (buffered-reader,
// emit-on-boundary, drain-prefix shape) and
// other_examples/f1855cec_recera-gai__stream-ndjson.go's buffered,
// flush-per-record NDJSON writer.
type StreamRepairer struct {
	opts Options
	w    io.Writer

	buf      []byte
	scanPos  int
	state    scanMode
	depth    int
	quote    byte
	escaped  bool
	sawValue bool

	aggregate    bool
	aggCount     int
	spill        *s2.Writer
	spillBuf     *bytes.Buffer
	aggOpened    bool
	ws           *writerSink
}

type scanMode int

const (
	scanNormal scanMode = iota
	scanInString
	scanInLineComment
	scanInBlockComment
)

// streamInitialCapacityHint sizes the initial scan buffer. This is a pure
// performance tuning knob — cpuid.CPU.Cache.L1D tells us nothing about
// JSON structure, only about a cache line budget worth staying under
// before the first grow — the algorithm itself stays scalar regardless of
// what the CPU reports, unlike the teacher's use of cpuid to pick an AVX2
// vs. AVX512 kernel.
func streamInitialCapacityHint() int {
	if l1 := cpuid.CPU.Cache.L1D; l1 > 0 {
		return l1
	}
	return 32 * 1024
}

// NewStreamRepairer creates a chunk-streaming repairer writing to w.
// opts.StreamNDJSONAggregate controls whether completed roots are wrapped
// into a single JSON array (NDJSON aggregation) or written independently,
// one per line.
func NewStreamRepairer(w io.Writer, opts Options) *StreamRepairer {
	s := &StreamRepairer{
		opts:      opts,
		w:         w,
		buf:       make([]byte, 0, streamInitialCapacityHint()),
		aggregate: opts.StreamNDJSONAggregate,
		ws:        newWriterSink(w),
	}
	if s.aggregate {
		s.spillBuf = &bytes.Buffer{}
		s.spill = s2.NewWriter(s.spillBuf)
	}
	return s
}

// Push appends chunk to the internal buffer and repairs/emits every
// complete root value it can now find.
func (s *StreamRepairer) Push(chunk []byte) error {
	s.buf = append(s.buf, chunk...)
	for {
		end, ok := s.scanForward()
		if !ok {
			break
		}
		span := s.buf[:end]
		if err := s.emitRepairedSpan(span); err != nil {
			return err
		}
		s.buf = append(s.buf[:0], s.buf[end:]...)
		s.scanPos = 0
	}
	return nil
}

// Flush repairs and emits any remaining buffered (possibly truncated) span,
// closes the NDJSON aggregation array if one was opened, and flushes the
// underlying writer.
func (s *StreamRepairer) Flush() error {
	if len(s.buf) > 0 {
		if err := s.emitRepairedSpan(s.buf); err != nil {
			return err
		}
		s.buf = s.buf[:0]
	}
	if s.aggregate {
		if err := s.spill.Close(); err != nil {
			return wrapSinkErr(err)
		}
		if err := s.drainAggregate(); err != nil {
			return wrapSinkErr(err)
		}
		if s.aggOpened {
			if err := s.ws.emitChar(']'); err != nil {
				return wrapSinkErr(err)
			}
		}
	}
	return wrapSinkErr(s.ws.Flush())
}

func (s *StreamRepairer) emitRepairedSpan(span []byte) error {
	text, _, err := repair(string(span), s.opts)
	if err != nil {
		return err
	}
	if !s.aggregate {
		if err := s.ws.emitStr(text); err != nil {
			return wrapSinkErr(err)
		}
		return wrapSinkErr(s.ws.emitChar('\n'))
	}
	if s.aggCount > 0 {
		if _, err := s.spill.Write([]byte(", ")); err != nil {
			return wrapSinkErr(err)
		}
	}
	if _, err := s.spill.Write([]byte(text)); err != nil {
		return wrapSinkErr(err)
	}
	s.aggCount++
	return nil
}

// drainAggregate decompresses the spilled, comma-joined root texts and
// streams them into the output array, bounding peak memory to one
// decompressed s2 block at a time instead of the full aggregate.
func (s *StreamRepairer) drainAggregate() error {
	if s.aggCount == 0 {
		return s.ws.emitStr("[]")
	}
	if err := s.ws.emitChar('['); err != nil {
		return err
	}
	s.aggOpened = true
	r := s2.NewReader(bytes.NewReader(s.spillBuf.Bytes()))
	_, err := io.Copy(s.ws.w, r)
	return err
}

// scanForward resumes scanning buf from scanPos, returning the exclusive
// end offset of the first complete root value found.
func (s *StreamRepairer) scanForward() (int, bool) {
	buf := s.buf
	i := s.scanPos
	for i < len(buf) {
		b := buf[i]
		switch s.state {
		case scanInLineComment:
			if b == '\n' {
				s.state = scanNormal
			}
			i++
		case scanInBlockComment:
			if b == '*' && i+1 < len(buf) && buf[i+1] == '/' {
				s.state = scanNormal
				i += 2
			} else {
				i++
			}
		case scanInString:
			switch {
			case s.escaped:
				s.escaped = false
			case b == '\\':
				s.escaped = true
			case b == s.quote:
				s.state = scanNormal
			}
			i++
		default:
			switch {
			case isWhitespace(b):
				// A newline only splits roots at depth 0: inside an unterminated
				// container (depth never drops back to 0) it is swallowed into the
				// in-flight span instead, matching original_source/src/stream.rs.
				if s.depth == 0 && s.sawValue {
					s.scanPos = i + 1
					s.reset()
					return i, true
				}
				i++
			case b == '"' || b == '\'' || b == '`':
				s.state = scanInString
				s.quote = b
				s.sawValue = true
				i++
			case b == '/' && i+1 < len(buf) && buf[i+1] == '/':
				s.state = scanInLineComment
				i += 2
			case b == '/' && i+1 < len(buf) && buf[i+1] == '*':
				s.state = scanInBlockComment
				i += 2
			case b == '{' || b == '[':
				s.depth++
				s.sawValue = true
				i++
			case b == '}' || b == ']':
				if s.depth > 0 {
					s.depth--
				}
				i++
				if s.depth == 0 && s.sawValue {
					s.scanPos = i
					s.reset()
					return i, true
				}
			case b == ',' && s.depth == 0:
				if s.sawValue {
					s.scanPos = i + 1
					s.reset()
					return i, true
				}
				i++
			default:
				s.sawValue = true
				i++
			}
		}
	}
	s.scanPos = i
	return 0, false
}

func (s *StreamRepairer) reset() {
	s.state = scanNormal
	s.depth = 0
	s.quote = 0
	s.escaped = false
	s.sawValue = false
}
