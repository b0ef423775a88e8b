package jsonrepair

// Character classification helpers, grounded on original_source/src/classify.rs.

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isDoubleQuoteLike(r rune) bool {
	switch r {
	case '"', '“', '”':
		return true
	}
	return false
}

func isSingleQuoteLike(r rune) bool {
	switch r {
	case '\'', '‘', '’', '`', '´':
		return true
	}
	return false
}

func isQuote(r rune) bool {
	return isDoubleQuoteLike(r) || isSingleQuoteLike(r)
}

// isClosingFor reports whether c closes a string opened with open: only an
// identical rune does. parseQuotedLiteral does not use it; it closes a string
// on any quote of the same quoteKind, so "“" is closed by "”" or '"'.
func isClosingFor(open, c rune) bool {
	return c == open
}

func isUnquotedStringDelimiter(r rune) bool {
	switch r {
	case ',', '[', ']', '{', '}', '\n', '\r', '(', ')', ':':
		return true
	}
	return false
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
