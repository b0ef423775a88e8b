package jsonrepair

import (
	"strings"

	"github.com/bytedance/sonic"
)

// Root driver (C4): BOM stripping, fenced-code-block extraction, JSONP
// unwrapping, narrative-text skipping, and multiple-top-level-value
// aggregation, grounded on original_source/src/repair.rs's top-level
// dispatch and on simdjson.go's document-level entry point shape.

// repairDocument is the single entry point used by the public API in
// repair.go. It writes the fully repaired document to out.
func repairDocument(input string, opts *Options, out sink, lg *logger) error {
	if opts.AssumeValidJSONFastpath && !opts.EnsureASCII && sonic.Valid([]byte(input)) {
		// spec §8's fast-path boundary: a single already-valid value round-trips
		// byte-for-byte, so skip every tolerance rule and copy input through
		// verbatim instead of re-serializing it.
		return out.emitStr(input)
	}

	c := newCursor(input)
	skipBOM(c)
	src := c.rest()

	if opts.FencedCodeBlocks {
		if blocks := extractFencedBlocks(src); blocks != nil {
			return repairRootsFromSources(blocks, opts, out, lg)
		}
	}

	return repairRootsFromSources([]string{src}, opts, out, lg)
}

// repairRootsFromSources repairs each source text's own top-level roots (a
// fenced block may itself contain multiple back-to-back JSON values) and
// aggregates everything into one array when more than one root was found
// across all sources, or across fences, per spec §4.4.
func repairRootsFromSources(sources []string, opts *Options, out sink, lg *logger) error {
	var roots []string
	for _, s := range sources {
		found, err := collectRoots(s, opts, lg)
		if err != nil {
			return err
		}
		roots = append(roots, found...)
	}

	if len(roots) == 0 {
		return out.emitStr("null")
	}
	if len(roots) == 1 {
		return out.emitStr(roots[0])
	}
	lg.record(0, "multi-root-aggregated")
	if err := out.emitChar('['); err != nil {
		return err
	}
	for i, r := range roots {
		if i > 0 {
			if err := out.emitChar(','); err != nil {
				return err
			}
		}
		if err := out.emitStr(r); err != nil {
			return err
		}
	}
	return out.emitChar(']')
}

// collectRoots strips one JSONP wrapper (iteratively, in case of nested
// callback wrappers) and then parses every back-to-back top-level value in
// src, skipping narrative text between and around them.
func collectRoots(src string, opts *Options, lg *logger) ([]string, error) {
	src = stripJSONPWrapper(src)
	c := newCursor(src)

	var roots []string
	for {
		skipNarrativeText(c, opts)
		if c.eof() {
			return roots, nil
		}
		buf := newStringSink(len(c.rest()))
		if err := parseValue(c, opts, buf, lg, 0); err != nil {
			return roots, err
		}
		roots = append(roots, buf.String())
		skipTrailingJSONPArtifact(c, opts)
	}
}

// stripJSONPWrapper removes a leading "ident(" / trailing ")" or ");" pair,
// repeating in case the text is wrapped more than once.
func stripJSONPWrapper(s string) string {
	for {
		n := jsonpPrefixLen(s)
		if n == 0 {
			return s
		}
		trimmed := strings.TrimRight(s[n:], " \t\r\n")
		suffix := 0
		if strings.HasSuffix(trimmed, ");") {
			suffix = 2
		} else if strings.HasSuffix(trimmed, ")") {
			suffix = 1
		} else {
			// No matching close paren: not actually a JSONP wrapper, leave as-is.
			return s
		}
		s = trimmed[:len(trimmed)-suffix]
	}
}

// skipTrailingJSONPArtifact discards a stray ");" or ")" immediately
// following a completed root value — the remainder of a callback wrapper
// collectRoots's own stripJSONPWrapper pass did not need to touch because it
// only trims from the outermost text boundary.
func skipTrailingJSONPArtifact(c *cursor, opts *Options) {
	look := *c
	skipWhitespaceAndComments(&look, opts)
	if look.hasPrefix(");") {
		look.advanceBytes(2)
		*c = look
	} else if look.hasPrefix(")") {
		look.advanceBytes(1)
		*c = look
	}
}

// skipNarrativeText advances the cursor past whitespace, comments, and any
// leading prose that does not itself begin a value, stopping once the
// cursor is positioned at a plausible value start (spec §4.4 "leading
// narrative text is skipped up to the first value").
func skipNarrativeText(c *cursor, opts *Options) {
	for {
		skipWhitespaceAndComments(c, opts)
		if c.eof() {
			return
		}
		if looksLikeValueStart(c) {
			return
		}
		// Not a value start: discard one run of non-whitespace ("a word") and
		// keep scanning.
		advanced := false
		for {
			b, ok := c.peekByte()
			if !ok || isWhitespace(b) {
				break
			}
			c.advanceBytes(1)
			advanced = true
		}
		if !advanced {
			c.advanceBytes(1)
		}
	}
}

// looksLikeValueStart reports whether the cursor is positioned at a
// character that can legitimately begin a JSON(-ish) value: a container, a
// quote, a number, a regex, or one of the recognized keyword literals.
func looksLikeValueStart(c *cursor) bool {
	r, size := c.peekRune()
	if size == 0 {
		return false
	}
	switch {
	case r == '{', r == '[', r == '/':
		return true
	case quoteKind(r) != 0:
		return true
	case r == '-' || isDigit(r):
		return true
	}
	rest := c.rest()
	for _, kw := range []string{"true", "false", "null", "True", "False", "None", "NaN", "Infinity", "undefined"} {
		if strings.HasPrefix(rest, kw) {
			after := kw
			if len(rest) == len(after) {
				return true
			}
			nb := rest[len(after)]
			if !isIdentCont(rune(nb)) {
				return true
			}
		}
	}
	return false
}

// extractFencedBlocks returns the content of every fenced code block
// (```lang\n ... \n```) found in s, or nil when s contains no fence — the
// caller then falls back to treating all of s as a single source.
func extractFencedBlocks(s string) []string {
	var blocks []string
	for {
		idx := strings.Index(s, "```")
		if idx < 0 {
			break
		}
		openLen := fenceOpenLangNewlineLen(s[idx:])
		if openLen == 0 {
			break
		}
		bodyStart := idx + openLen
		rest := s[bodyStart:]
		end := strings.Index(rest, "```")
		var body string
		if end < 0 {
			body = rest
			s = ""
		} else {
			body = rest[:end]
			s = rest[end+3:]
		}
		blocks = append(blocks, body)
		if end < 0 {
			break
		}
	}
	return blocks
}

// applyPythonStyleSeparators rewrites a fully-assembled repaired document to
// use ", " and ": " separators instead of bare "," and ":", the way
// json.dumps does by default — only outside of string literals.
func applyPythonStyleSeparators(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/8)
	inString := false
	for i := 0; i < len(s); i++ {
		b := s[i]
		sb.WriteByte(b)
		if b == '"' {
			// Count preceding backslashes to tell an escaped quote from a real
			// string boundary; s is our own emitted output, always validly
			// escaped, so a simple parity check is exact.
			backslashes := 0
			for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
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
	return sb.String()
}
