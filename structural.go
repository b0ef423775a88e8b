package jsonrepair

import "strings"

// maxNestingDepth bounds recursion the way spec §9 recommends ("a sensible
// bound (e.g., 1024) is recommended") since the structural parser is
// naturally recursive and this implementation does not convert to an
// explicit work-stack.
const maxNestingDepth = 1024

// parseValue dispatches to the leaf/container parser for the value starting
// at the cursor (spec §4.3's object/array member dispatch, lifted to the
// top level for the root driver and for recursive members/elements).
func parseValue(c *cursor, opts *Options, out sink, lg *logger, depth int) error {
	if c.eof() {
		return out.emitStr("null")
	}
	r, size := c.peekRune()
	if size == 0 {
		return out.emitStr("null")
	}

	switch {
	case r == '{':
		if depth > maxNestingDepth {
			lg.record(c.charPos(), "max-nesting-depth-exceeded")
			c.advanceRune()
			return out.emitStr("{}")
		}
		return parseObject(c, opts, out, lg, depth)
	case r == '[':
		if depth > maxNestingDepth {
			lg.record(c.charPos(), "max-nesting-depth-exceeded")
			c.advanceRune()
			return out.emitStr("[]")
		}
		return parseArray(c, opts, out, lg, depth)
	case quoteKind(r) != 0:
		return parseStringLiteralValue(c, opts, out, lg)
	case r == '/':
		return parseRegexLiteral(c, opts, out, lg)
	case r == '-' || isDigit(r) || (r == '.' && opts.NumberToleranceLeadingDot):
		return parseNumberToken(c, opts, out, lg)
	default:
		return parseIdentOrSymbol(c, opts, out, lg)
	}
}

// parseArray implements the recursive-descent array loop of spec §4.3:
// tolerant of redundant commas (consumed silently — a comma is only ever
// re-emitted just before the next successfully parsed element), missing
// commas (inferred the same way, by never depending on an input comma to
// decide whether to emit one), ellipsis, word markers, and truncation. At the
// root (depth 0), a line break followed by '[' or '{' with no comma since the
// last element closes the array instead, so that container is parsed as the
// next root value.
func parseArray(c *cursor, opts *Options, out sink, lg *logger, depth int) error {
	c.advanceBytes(1) // '['
	if err := out.emitChar('['); err != nil {
		return err
	}
	skipWhitespaceAndComments(c, opts)
	if b, ok := c.peekByte(); ok && b == ']' {
		c.advanceBytes(1)
		return out.emitChar(']')
	}

	index := 0
	danglingComma := false
	for {
		before := c.pos
		skipWhitespaceAndComments(c, opts)
		skipWordMarkers(c, opts.WordCommentMarkers)
		for skipEllipsis(c) {
			skipWhitespaceAndComments(c, opts)
		}
		if c.eof() {
			if danglingComma && !opts.AggressiveTruncationFix {
				lg.record(c.charPos(), "truncation-null-element")
				if err := out.emitStr(",null"); err != nil {
					return err
				}
			}
			return out.emitChar(']')
		}
		b, _ := c.peekByte()
		if b == ']' {
			c.advanceBytes(1)
			return out.emitChar(']')
		}
		if b == ',' {
			c.advanceBytes(1)
			danglingComma = true
			continue
		}
		if depth == 0 && index > 0 && !danglingComma && (b == '[' || b == '{') &&
			strings.ContainsAny(c.src[before:c.pos], "\n\r") {
			lg.record(c.charPos(), "unclosed-array-closed-at-newline")
			return out.emitChar(']')
		}

		if index > 0 {
			if err := out.emitChar(','); err != nil {
				return err
			}
		}
		danglingComma = false

		lg.pushIndex(index)
		err := parseValue(c, opts, out, lg, depth+1)
		lg.pop()
		if err != nil {
			return err
		}
		index++
	}
}

// parseObject implements the recursive-descent object loop of spec §4.3.
// Each member is staged in a private buffer sink so that, at truncation
// right after a colon, aggressive_truncation_fix can drop the incomplete
// member entirely ("close at the nearest safe boundary") instead of the
// default behavior of padding the missing value with null — something that
// cannot be undone once bytes reach the caller's sink.
func parseObject(c *cursor, opts *Options, out sink, lg *logger, depth int) error {
	c.advanceBytes(1) // '{'
	if err := out.emitChar('{'); err != nil {
		return err
	}
	skipWhitespaceAndComments(c, opts)
	if b, ok := c.peekByte(); ok && b == '}' {
		c.advanceBytes(1)
		return out.emitChar('}')
	}

	memberIndex := 0
	for {
		skipWhitespaceAndComments(c, opts)
		skipWordMarkers(c, opts.WordCommentMarkers)
		for skipEllipsis(c) {
			skipWhitespaceAndComments(c, opts)
		}
		if c.eof() {
			return out.emitChar('}')
		}
		b, _ := c.peekByte()
		if b == '}' {
			c.advanceBytes(1)
			return out.emitChar('}')
		}
		if b == ',' {
			c.advanceBytes(1)
			continue
		}

		member := newStringSink(32)
		key, err := parseObjectMemberKey(c, opts, member)
		if err != nil {
			return err
		}

		skipWhitespaceAndComments(c, opts)
		if b, ok := c.peekByte(); ok && b == ':' {
			c.advanceBytes(1)
		}
		if err := member.emitChar(':'); err != nil {
			return err
		}
		skipWhitespaceAndComments(c, opts)
		skipWordMarkers(c, opts.WordCommentMarkers)
		for skipEllipsis(c) {
			skipWhitespaceAndComments(c, opts)
		}

		if c.eof() {
			if opts.AggressiveTruncationFix {
				lg.record(c.charPos(), "truncation-drop-member")
				return out.emitChar('}')
			}
			lg.record(c.charPos(), "truncation-null-value")
			if err := member.emitStr("null"); err != nil {
				return err
			}
			if memberIndex > 0 {
				if err := out.emitChar(','); err != nil {
					return err
				}
			}
			if err := out.emitStr(member.String()); err != nil {
				return err
			}
			return out.emitChar('}')
		}

		lg.pushKey(key)
		verr := parseValue(c, opts, member, lg, depth+1)
		lg.pop()
		if verr != nil {
			return verr
		}

		if memberIndex > 0 {
			if err := out.emitChar(','); err != nil {
				return err
			}
		}
		if err := out.emitStr(member.String()); err != nil {
			return err
		}
		memberIndex++
	}
}

// parseObjectMemberKey reads a quoted or bareword key and writes its JSON
// string form to member, returning the decoded key text for log/path
// attribution.
func parseObjectMemberKey(c *cursor, opts *Options, member sink) (string, error) {
	if r, size := c.peekRune(); size > 0 && quoteKind(r) != 0 {
		return parseStringLiteralKey(c, member, opts)
	}
	raw := strings.TrimSpace(takeKeyUntilDelim(c))
	if err := emitJSONStringLiteral(member, raw, opts.EnsureASCII); err != nil {
		return "", err
	}
	return raw, nil
}

// takeKeyUntilDelim returns the maximal prefix stopping at ':', '}', ',',
// or a newline — the bare-identifier/symbol key form of spec §4.3.
func takeKeyUntilDelim(c *cursor) string {
	start := c.pos
	for {
		b, ok := c.peekByte()
		if !ok {
			break
		}
		switch b {
		case ':', '}', ',', '\n', '\r':
			return c.src[start:c.pos]
		default:
			if b < 0x80 {
				c.advanceBytes(1)
			} else {
				c.advanceRune()
			}
		}
	}
	return c.src[start:c.pos]
}
