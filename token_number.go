package jsonrepair

// Number token parsing, grounded on parse_number_amd64.go's segment-first
// shape (teacher scans a delimiter-bounded segment before classifying it)
// and original_source/src/classify.rs + src/parser/number.rs for the
// tolerance policies themselves.

// takeNumberSegment returns the contiguous prefix starting at the cursor
// (already known to start with '-', a digit, or a tolerated leading '.')
// and continuing until a delimiter: whitespace, ",", "}", "]", ")", "(",
// ":", or the start of a comment.
func takeNumberSegment(c *cursor, opts *Options) string {
	start := c.pos
	for {
		b, ok := c.peekByte()
		if !ok {
			break
		}
		switch b {
		case ' ', '\t', '\n', '\r', ',', '}', ']', ')', '(', ':':
			return c.src[start:c.pos]
		case '/':
			if nb, ok2 := c.peekByteAt(1); ok2 && (nb == '/' || nb == '*') {
				return c.src[start:c.pos]
			}
			c.advanceBytes(1)
		case '#':
			if opts.TolerateHashComments {
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

// isSuspiciousNumber reports whether seg's structure violates the JSON
// number grammar in a way number_quote_suspicious should catch: multiple
// dots, alphabetic characters other than e/E, a '/', or a '-' that is
// neither the leading sign nor an exponent sign.
func isSuspiciousNumber(seg string) bool {
	dots := 0
	for i := 0; i < len(seg); i++ {
		b := seg[i]
		switch {
		case b == '.':
			dots++
		case b == '/':
			return true
		case b == '-':
			if i == 0 {
				continue
			}
			prev := seg[i-1]
			if prev == 'e' || prev == 'E' {
				continue
			}
			return true
		case b == 'e' || b == 'E':
			// exponent marker, fine
		case (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z'):
			return true
		}
	}
	return dots > 1
}

// parseNumberToken consumes a number segment and emits its repaired form.
func parseNumberToken(c *cursor, opts *Options, out sink, lg *logger) error {
	pos := c.charPos()
	seg := takeNumberSegment(c, opts)
	if seg == "" {
		return newUnexpectedEnd(pos)
	}

	if opts.NormalizeJSNonFinite && seg == "-Infinity" {
		lg.record(pos, "js-nonfinite-to-null")
		return out.emitStr("null")
	}

	if opts.NumberQuoteSuspicious && isSuspiciousNumber(seg) {
		lg.record(pos, "suspicious-number-quoted")
		return emitJSONStringLiteral(out, seg, opts.EnsureASCII)
	}

	rewritten, leadingZero, hasExponent := rewriteNumberSegment(seg, opts)

	quote := false
	switch opts.LeadingZeroPolicy {
	case QuoteAsString:
		quote = leadingZero
	case KeepAsNumber:
		// Open question (DESIGN.md): leading zero combined with an exponent
		// produces a token ("007.5e1") a strict validator would reject even
		// under KeepAsNumber, so that one combined case always quotes.
		quote = leadingZero && hasExponent
	}

	if quote {
		lg.record(pos, "leading-zero-quoted")
		return emitJSONStringLiteral(out, rewritten, opts.EnsureASCII)
	}
	if rewritten != seg {
		lg.record(pos, "number-tolerance-rewrite")
	}
	return out.emitStr(rewritten)
}

// rewriteNumberSegment applies the JSON-number tolerance policies of spec
// §4.2 to seg, returning the repaired literal text, whether its integer part
// had a leading zero, and whether an exponent is present in the result.
func rewriteNumberSegment(seg string, opts *Options) (string, bool, bool) {
	i := 0
	out := make([]byte, 0, len(seg)+2)

	if i < len(seg) && seg[i] == '-' {
		out = append(out, '-')
		i++
	}

	intStart := i
	for i < len(seg) && isDigit(rune(seg[i])) {
		i++
	}
	hasInt := i > intStart
	leadingZero := hasInt && (i-intStart) > 1 && seg[intStart] == '0'
	if hasInt {
		out = append(out, seg[intStart:i]...)
	} else if i < len(seg) && seg[i] == '.' && opts.NumberToleranceLeadingDot {
		out = append(out, '0')
	}

	if i < len(seg) && seg[i] == '.' {
		out = append(out, '.')
		i++
		fracStart := i
		for i < len(seg) && isDigit(rune(seg[i])) {
			i++
		}
		if i > fracStart {
			out = append(out, seg[fracStart:i]...)
		} else if opts.NumberToleranceTrailingDot {
			out = append(out, '0')
		}
	}

	hasExponent := false
	if i < len(seg) && (seg[i] == 'e' || seg[i] == 'E') {
		mark := i
		j := i + 1
		if j < len(seg) && (seg[j] == '+' || seg[j] == '-') {
			j++
		}
		expDigitsStart := j
		for j < len(seg) && isDigit(rune(seg[j])) {
			j++
		}
		if j > expDigitsStart {
			out = append(out, seg[mark:j]...)
			hasExponent = true
		} else if !opts.NumberToleranceIncompleteExponent {
			out = append(out, seg[mark:j]...)
			hasExponent = true
		}
		// else: tolerated incomplete exponent — drop it, keep the base.
		i = j
	}

	return string(out), leadingZero, hasExponent
}
