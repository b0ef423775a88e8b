package jsonrepair

import "strings"

// Regex literal, identifier/keyword, and bareword parsing (spec §4.2),
// grounded on original_source/src/parser/lex.rs.

// parseRegexLiteral reads `/body/flags`, emitting it as a JSON string with
// the regex's own "\/" escapes collapsed back to a bare "/".
func parseRegexLiteral(c *cursor, opts *Options, out sink, lg *logger) error {
	pos := c.charPos()
	if b, ok := c.peekByte(); !ok || b != '/' {
		return newUnexpectedChar(pos, 0)
	}
	c.advanceBytes(1)

	var body strings.Builder
	escaped := false
	for !c.eof() {
		r, size := c.peekRune()
		if escaped {
			if r != '/' {
				body.WriteByte('\\')
			}
			body.WriteRune(r)
			c.advanceBytes(size)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			c.advanceBytes(size)
			continue
		}
		if r == '/' {
			c.advanceBytes(size)
			break
		}
		body.WriteRune(r)
		c.advanceBytes(size)
	}

	flagsStart := c.pos
	for {
		b, ok := c.peekByte()
		if !ok || !((b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')) {
			break
		}
		c.advanceBytes(1)
	}
	flags := c.src[flagsStart:c.pos]

	lg.record(pos, "regex-literal-to-string")
	return emitJSONStringLiteral(out, "/"+body.String()+"/"+flags, opts.EnsureASCII)
}

// parseIdentOrSymbol reads one identifier or unquoted symbol run and emits
// its repaired form: a recognized keyword/literal, or a bareword chain
// joined with single spaces.
func parseIdentOrSymbol(c *cursor, opts *Options, out sink, lg *logger) error {
	pos := c.charPos()
	ident := takeIdent(c)
	if ident == "" {
		sym := takeSymbolUntilDelim(c)
		if sym == "" {
			return newUnexpectedEnd(pos)
		}
		return emitBarewordChain(c, opts, out, lg, sym)
	}

	switch ident {
	case "true", "false", "null":
		return out.emitStr(ident)
	case "True":
		if opts.AllowPythonKeywords {
			lg.record(pos, "python-keyword")
			return out.emitStr("true")
		}
	case "False":
		if opts.AllowPythonKeywords {
			lg.record(pos, "python-keyword")
			return out.emitStr("false")
		}
	case "None":
		if opts.AllowPythonKeywords {
			lg.record(pos, "python-keyword")
			return out.emitStr("null")
		}
	case "NaN", "Infinity":
		if opts.NormalizeJSNonFinite {
			lg.record(pos, "js-nonfinite-to-null")
			return out.emitStr("null")
		}
	case "undefined":
		if opts.RepairUndefined {
			lg.record(pos, "undefined-to-null")
			return out.emitStr("null")
		}
	}
	return emitBarewordChain(c, opts, out, lg, ident)
}

// emitBarewordChain implements "adjacent words separated by runs of
// spaces/tabs are concatenated with a single space into one JSON string,
// stopping at any structural delimiter, quote, or newline" (spec §4.2).
func emitBarewordChain(c *cursor, opts *Options, out sink, lg *logger, first string) error {
	parts := []string{first}
	for {
		n := 0
		for {
			b, ok := c.peekByteAt(n)
			if ok && (b == ' ' || b == '\t') {
				n++
				continue
			}
			break
		}
		if n == 0 {
			break
		}
		nb, ok := c.peekByteAt(n)
		if !ok {
			break
		}
		if nb == '"' || nb == '\'' || nb == '\n' || nb == '\r' || isUnquotedStringDelimiter(rune(nb)) {
			break
		}
		if nb == '/' {
			if nb2, ok2 := c.peekByteAt(n + 1); ok2 && (nb2 == '/' || nb2 == '*') {
				break
			}
		}
		c.advanceBytes(n)
		next := takeSymbolUntilDelim(c)
		if next == "" {
			break
		}
		parts = append(parts, next)
	}
	if len(parts) > 1 {
		lg.record(c.charPos(), "bareword-joined")
	}
	return emitJSONStringLiteral(out, strings.Join(parts, " "), opts.EnsureASCII)
}
