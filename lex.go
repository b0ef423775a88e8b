package jsonrepair

import "strings"

// skipWhitespaceAndComments is the C1 tight loop from spec §4.1: alternate
// ASCII-whitespace scans, "//" line comments, "/* */" block comments, and
// (when enabled) "#" line comments, restarting after each recognized
// construct until nothing is consumed. Grounded on
// original_source/src/parser/lex.rs's skip_ws_and_comments.
func skipWhitespaceAndComments(c *cursor, opts *Options) {
	for {
		start := c.pos
		// (a) ASCII whitespace run.
		for {
			b, ok := c.peekByte()
			if !ok || !isWhitespace(b) {
				break
			}
			c.advanceBytes(1)
		}
		// (b) "//" line comment.
		if c.hasPrefix("//") {
			c.advanceBytes(2)
			skipToLineEnd(c)
			continue
		}
		// (c) "/* ... */" block comment; unterminated consumes to end.
		if c.hasPrefix("/*") {
			c.advanceBytes(2)
			if idx := strings.Index(c.rest(), "*/"); idx >= 0 {
				c.advanceBytes(idx + 2)
			} else {
				c.advanceBytes(len(c.rest()))
			}
			continue
		}
		// (d) "#" line comment, only when tolerated.
		if opts.TolerateHashComments && c.hasPrefix("#") {
			c.advanceBytes(1)
			skipToLineEnd(c)
			continue
		}
		if c.pos == start {
			return
		}
	}
}

func skipToLineEnd(c *cursor) {
	for {
		b, ok := c.peekByte()
		if !ok || b == '\n' || b == '\r' {
			return
		}
		c.advanceBytes(1)
	}
}

// skipEllipsis consumes a leading "..." and reports whether it did.
func skipEllipsis(c *cursor) bool {
	if c.hasPrefix("...") {
		c.advanceBytes(3)
		return true
	}
	return false
}

// skipWordMarkers drops one of the configured bare-word comment markers
// (e.g. "COMMENT") when it appears at the cursor, followed by a delimiter or
// whitespace — used before object keys per spec §3.
func skipWordMarkers(c *cursor, markers []string) {
	if len(markers) == 0 {
		return
	}
	for {
		matched := false
		for _, m := range markers {
			if m == "" {
				continue
			}
			if c.hasPrefix(m) {
				after, ok := c.peekByteAt(len(m))
				if !ok || isWhitespace(after) || isUnquotedStringDelimiter(rune(after)) {
					c.advanceBytes(len(m))
					matched = true
					break
				}
			}
		}
		if !matched {
			return
		}
	}
}

// takeIdent returns the maximal prefix matching [A-Za-z_$][A-Za-z0-9_$]*.
func takeIdent(c *cursor) string {
	r, size := c.peekRune()
	if size == 0 || !isIdentStart(r) {
		return ""
	}
	start := c.pos
	c.advanceRune()
	for {
		r, size := c.peekRune()
		if size == 0 || !isIdentCont(r) {
			break
		}
		c.advanceRune()
	}
	return c.src[start:c.pos]
}

// takeSymbolUntilDelim returns the maximal prefix stopping at whitespace,
// any of ", [ ] { } ( ) : \" '", or a "/" that begins a comment. A standalone
// "/" does not terminate, so forward slashes inside otherwise-unquoted
// tokens survive.
func takeSymbolUntilDelim(c *cursor) string {
	start := c.pos
	for {
		b, ok := c.peekByte()
		if !ok {
			break
		}
		switch b {
		case ' ', '\t', '\n', '\r', ',', '[', ']', '{', '}', '(', ')', ':', '"', '\'':
			return c.src[start:c.pos]
		case '/':
			if nb, ok := c.peekByteAt(1); ok && (nb == '/' || nb == '*') {
				return c.src[start:c.pos]
			}
			c.advanceBytes(1)
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

// skipBOM consumes a leading U+FEFF byte-order mark.
func skipBOM(c *cursor) {
	const bom = "\xEF\xBB\xBF" // UTF-8 encoding of U+FEFF
	if c.hasPrefix(bom) {
		c.advanceBytes(len(bom))
	}
}

// jsonpPrefixLen returns the offset past "ident(" when s begins with
// optional ASCII whitespace, an identifier, optional whitespace, and "(".
// Returns 0 when there is no such prefix.
func jsonpPrefixLen(s string) int {
	i := 0
	for i < len(s) && isWhitespace(s[i]) {
		i++
	}
	j := i
	if j >= len(s) || !isIdentStart(rune(s[j])) {
		return 0
	}
	j++
	for j < len(s) && isIdentCont(rune(s[j])) {
		j++
	}
	if j == i {
		return 0
	}
	k := j
	for k < len(s) && isWhitespace(s[k]) {
		k++
	}
	if k >= len(s) || s[k] != '(' {
		return 0
	}
	return k + 1
}

// fenceOpenLangNewlineLen returns the number of bytes to skip past an
// opening "```": optional extra backticks, an optional language tag, optional
// spaces/tabs, and an optional single newline.
func fenceOpenLangNewlineLen(s string) int {
	if !strings.HasPrefix(s, "```") {
		return 0
	}
	i := 3
	for i < len(s) && s[i] == '`' {
		i++
	}
	j := i
	for j < len(s) && isLangTagByte(s[j]) {
		j++
	}
	i = j
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i < len(s) && (s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

func isLangTagByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}
