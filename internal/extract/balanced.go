package extract

import "strings"

// Balanced returns the span of text from the first occurrence of open to its
// matching closer, inclusive. Only brackets of the same kind as open are
// counted, and brackets inside string literals are ignored. Supported
// openers are '[', '(' and '{'; any other open byte reports false. The
// second result is also false when there is no opener or the span never
// closes.
func Balanced(text string, open byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", false
	}
	end, ok := matchClose(text, start)
	if !ok {
		return "", false
	}
	return text[start : end+1], true
}

// matchClose returns the index of the closer matching the opener at
// text[start].
func matchClose(text string, start int) (int, bool) {
	open := text[start]
	var closer byte
	switch open {
	case '[':
		closer = ']'
	case '(':
		closer = ')'
	case '{':
		closer = '}'
	default:
		return 0, false
	}

	depth, inString := 0, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
