package jsonrepair

import (
	"fmt"
	"strconv"
	"strings"
)

// String literal parsing, grounded on original_source/src/parser/strings.rs.
// There is no AST: decode and re-encode happen back to back inside
// parseStringLiteralValue/parseStringLiteralKey.

func quoteKind(r rune) int {
	switch {
	case isDoubleQuoteLike(r):
		return 1
	case isSingleQuoteLike(r):
		return 2
	default:
		return 0
	}
}

// peekHex4 reads 4 hex digits starting offset bytes past the cursor without
// consuming anything.
func peekHex4(c *cursor, offset int) (uint16, bool) {
	s := c.src
	start := c.pos + offset
	if start+4 > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+4], 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// decodeUnicodeEscape decodes a \uXXXX escape (cursor positioned right after
// the 'u'), combining a high/low surrogate pair into one code point and
// dropping an isolated surrogate, per spec §4.2. The four characters after
// \u failing to parse as hex digits is the one string-literal defect this
// engine does not paper over (spec §7's InvalidUnicodeEscape): unlike an
// isolated surrogate, there is no plausible textual substitute to fall back
// to, so it surfaces as an error instead of silently dropping.
func decodeUnicodeEscape(c *cursor) (string, error) {
	pos := c.charPos()
	v, ok := peekHex4(c, 0)
	if !ok {
		n := len(c.rest())
		if n > 4 {
			n = 4
		}
		c.advanceBytes(n)
		return "", newInvalidUnicodeEscape(pos)
	}
	c.advanceBytes(4)
	switch {
	case v >= 0xD800 && v <= 0xDBFF:
		if c.hasPrefix("\\u") {
			if lo, ok2 := peekHex4(c, 2); ok2 && lo >= 0xDC00 && lo <= 0xDFFF {
				c.advanceBytes(6)
				code := rune(0x10000 + (int(v-0xD800) << 10) + int(lo-0xDC00))
				return string(code), nil
			}
		}
		return "", nil
	case v >= 0xDC00 && v <= 0xDFFF:
		return "", nil
	default:
		return string(rune(v)), nil
	}
}

// decodeEscape decodes one escape sequence; the cursor is positioned right
// after the backslash.
func decodeEscape(c *cursor) (string, error) {
	r, size := c.peekRune()
	if size == 0 {
		return "", nil
	}
	switch r {
	case '\\':
		c.advanceRune()
		return "\\", nil
	case '"':
		c.advanceRune()
		return "\"", nil
	case '\'':
		c.advanceRune()
		return "'", nil
	case 'n':
		c.advanceRune()
		return "\n", nil
	case 'r':
		c.advanceRune()
		return "\r", nil
	case 't':
		c.advanceRune()
		return "\t", nil
	case 'b':
		c.advanceRune()
		return "\b", nil
	case 'f':
		c.advanceRune()
		return "\f", nil
	case 'u':
		c.advanceRune()
		return decodeUnicodeEscape(c)
	default:
		c.advanceRune()
		return string(r), nil
	}
}

// parseQuotedLiteral decodes one quoted literal at the cursor. stop reports
// whether an ASCII byte is the context-dependent stop delimiter that closes
// an otherwise-unterminated string implicitly, without consuming it. Returns
// ok=false if the cursor is not positioned at a quote, and a non-nil error
// if the literal contains a malformed \uXXXX escape.
func parseQuotedLiteral(c *cursor, stop func(byte) bool) (string, bool, error) {
	open, size := c.peekRune()
	kind := quoteKind(open)
	if size == 0 || kind == 0 {
		return "", false, nil
	}
	c.advanceRune()

	var sb strings.Builder
	for {
		if c.eof() {
			return sb.String(), true, nil
		}
		if b, ok := c.peekByte(); ok && b < 0x80 && stop != nil && stop(b) {
			return sb.String(), true, nil
		}
		r, rsize := c.peekRune()
		if rsize == 0 {
			c.advanceBytes(1)
			continue
		}
		if r == '\\' {
			c.advanceRune()
			decoded, err := decodeEscape(c)
			if err != nil {
				return "", false, err
			}
			sb.WriteString(decoded)
			continue
		}
		if quoteKind(r) == kind {
			c.advanceRune()
			return sb.String(), true, nil
		}
		sb.WriteRune(r)
		c.advanceRune()
	}
}

func isValueStopDelim(b byte) bool {
	switch b {
	case ',', '}', ']', '\n':
		return true
	}
	return false
}

func isKeyStopDelim(b byte) bool {
	switch b {
	case ':', '}', ',':
		return true
	}
	return false
}

// identThenQuoteLen reports the length of a leading identifier in s
// when it is immediately followed by a quote character — the
// embedded-quote-as-continuation shape ("lorem "ipsum" sic").
func identThenQuoteLen(s string) (int, bool) {
	if s == "" || !isIdentStart(rune(s[0])) {
		return 0, false
	}
	i := 1
	for i < len(s) && isIdentCont(rune(s[i])) {
		i++
	}
	if i >= len(s) {
		return 0, false
	}
	if quoteKind(rune(s[i])) == 0 {
		return 0, false
	}
	return i, true
}

// parseStringLiteralValue implements the concatenation and embedded-quote
// continuation heuristics of spec §4.2/§4.3, then emits the result.
func parseStringLiteralValue(c *cursor, opts *Options, out sink, lg *logger) error {
	pos := c.charPos()
	lit, ok, err := parseQuotedLiteral(c, isValueStopDelim)
	if err != nil {
		return err
	}
	if !ok {
		return newUnexpectedChar(pos, 0)
	}

	look := *c
	skipWhitespaceAndComments(&look, opts)
	hasPlus := look.hasPrefix("+")
	_, hasEmbed := identThenQuoteLen(look.rest())

	if !hasPlus && !hasEmbed {
		return emitJSONStringLiteral(out, lit, opts.EnsureASCII)
	}

	acc := lit
	for {
		probe := *c
		skipWhitespaceAndComments(&probe, opts)
		if probe.hasPrefix("+") {
			probe.advanceBytes(1)
			skipWhitespaceAndComments(&probe, opts)
			more, ok, err := parseQuotedLiteral(&probe, isValueStopDelim)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			acc += more
			*c = probe
			continue
		}
		if n, embed := identThenQuoteLen(probe.rest()); embed {
			ident := probe.rest()[:n]
			probe.advanceBytes(n)
			q, qsize := probe.peekRune()
			kind := quoteKind(q)
			probe.advanceBytes(qsize)
			acc += string(q) + ident + string(q)
			for {
				if probe.eof() {
					break
				}
				r, rsize := probe.peekRune()
				if quoteKind(r) == kind {
					probe.advanceRune()
					break
				}
				acc += string(r)
				probe.advanceBytes(rsize)
			}
			*c = probe
			continue
		}
		break
	}
	lg.record(pos, "string-concatenation")
	return emitJSONStringLiteral(out, acc, opts.EnsureASCII)
}

// parseStringLiteralKey decodes a quoted object key (no concatenation).
func parseStringLiteralKey(c *cursor, out sink, opts *Options) (string, error) {
	pos := c.charPos()
	lit, ok, err := parseQuotedLiteral(c, isKeyStopDelim)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", newObjectKeyExpected(pos)
	}
	if err := emitJSONStringLiteral(out, lit, opts.EnsureASCII); err != nil {
		return "", err
	}
	return lit, nil
}

// emitJSONStringLiteral writes the JSON-quoted form of s: a fast path for
// runs needing no escaping, a general path that escapes control characters,
// quotes, backslashes, and (when ensureASCII) every code point above
// U+007F, using a surrogate pair above U+FFFF. Grounded on
// emit_json_string_from_lit in original_source/src/parser/strings.rs.
func emitJSONStringLiteral(out sink, s string, ensureASCII bool) error {
	if isASCII(s) && !needsEscapeASCII(s) {
		if err := out.emitChar('"'); err != nil {
			return err
		}
		if err := out.emitStr(s); err != nil {
			return err
		}
		return out.emitChar('"')
	}

	if err := out.emitChar('"'); err != nil {
		return err
	}
	start := 0
	for i, r := range s {
		needsEscape := r == '"' || r == '\\' || r <= 0x1F || (ensureASCII && r > 0x7F)
		if !needsEscape {
			continue
		}
		if i > start {
			if err := out.emitStr(s[start:i]); err != nil {
				return err
			}
		}
		if err := emitEscapedRune(out, r); err != nil {
			return err
		}
		start = i + len(string(r))
	}
	if start < len(s) {
		if err := out.emitStr(s[start:]); err != nil {
			return err
		}
	}
	return out.emitChar('"')
}

func emitEscapedRune(out sink, r rune) error {
	switch r {
	case '"':
		return out.emitStr("\\\"")
	case '\\':
		return out.emitStr("\\\\")
	case '\b':
		return out.emitStr("\\b")
	case '\f':
		return out.emitStr("\\f")
	case '\n':
		return out.emitStr("\\n")
	case '\r':
		return out.emitStr("\\r")
	case '\t':
		return out.emitStr("\\t")
	}
	if r <= 0x1F || r <= 0xFFFF {
		return out.emitStr(fmt.Sprintf("\\u%04X", r))
	}
	u := r - 0x10000
	hi := 0xD800 + (u >> 10 & 0x3FF)
	lo := 0xDC00 + (u & 0x3FF)
	return out.emitStr(fmt.Sprintf("\\u%04X\\u%04X", hi, lo))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func needsEscapeASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '"' || b == '\\' || b <= 0x1F {
			return true
		}
	}
	return false
}
