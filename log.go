package jsonrepair

import "strconv"

// LogEntry records one repair decision. The logger is a side channel, not a
// control-flow mechanism (spec §4.4/§9): nothing in the parser branches on
// whether logging is enabled beyond whether to append an entry.
type LogEntry struct {
	Position int
	Message  string
	Context  string
	Path     string
}

// pathStack builds JSON-pointer-like paths ($["key"][0]…) for log
// attribution, pushed/popped around each object key and array index the way
// original_source/src/tests/logging_path.rs exercises.
type pathStack struct {
	segments []string
}

func newPathStack() *pathStack {
	return &pathStack{segments: []string{"$"}}
}

func (p *pathStack) pushKey(key string) {
	p.segments = append(p.segments, "["+strconv.Quote(key)+"]")
}

func (p *pathStack) pushIndex(i int) {
	p.segments = append(p.segments, "["+strconv.Itoa(i)+"]")
}

func (p *pathStack) pop() {
	if len(p.segments) > 1 {
		p.segments = p.segments[:len(p.segments)-1]
	}
}

func (p *pathStack) String() string {
	s := p.segments[0]
	for _, seg := range p.segments[1:] {
		s += seg
	}
	return s
}

// logger accumulates LogEntry values during a repair call. A nil *logger is
// valid and every method on it is a no-op, so the hot path never branches on
// opts.Logging beyond constructing the (possibly nil) logger once.
type logger struct {
	opts    *Options
	entries []LogEntry
	path    *pathStack
	src     string
}

func newLogger(opts *Options, src string) *logger {
	if !opts.Logging {
		return nil
	}
	l := &logger{opts: opts, src: src}
	if opts.LogJSONPath {
		l.path = newPathStack()
	}
	return l
}

func (l *logger) pushKey(key string) {
	if l == nil || l.path == nil {
		return
	}
	l.path.pushKey(key)
}

func (l *logger) pushIndex(i int) {
	if l == nil || l.path == nil {
		return
	}
	l.path.pushIndex(i)
}

func (l *logger) pop() {
	if l == nil || l.path == nil {
		return
	}
	l.path.pop()
}

func (l *logger) record(pos int, message string) {
	if l == nil {
		return
	}
	entry := LogEntry{Position: pos, Message: message, Context: l.context(pos)}
	if l.path != nil {
		entry.Path = l.path.String()
	}
	l.entries = append(l.entries, entry)
}

// context returns a char-window snippet around pos, sized by
// opts.LogContextWindow on both sides.
func (l *logger) context(pos int) string {
	window := l.opts.LogContextWindow
	runes := []rune(l.src)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	start := pos - window
	if start < 0 {
		start = 0
	}
	end := pos + window
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}
