package edn

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// readSimple is the first Reader stage. It accepts only text that is both
// valid JSON and inside a grammar where JSON and the wire format agree:
// arrays, numbers, booleans and strings without escapes. Objects (":" means
// something else here), null (a symbol here) and backslashes (different
// escape sets) are left to the full grammar.
func readSimple(text string, maxDepth int) (Value, bool) {
	if !simpleEligible(text, maxDepth) {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, false
	}
	return fromJSON(raw)
}

func simpleEligible(text string, maxDepth int) bool {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if trimmed == "" {
		return false
	}
	switch c := trimmed[0]; {
	case c == '[' || c == '"' || c == '-' || c == 't' || c == 'f' || isDigit(c):
	default:
		return false
	}
	// the JSON decoder rewrites invalid UTF-8; the full grammar copies it
	if !utf8.ValidString(text) || strings.ContainsAny(text, "\\{") || strings.Contains(text, "null") {
		return false
	}
	depth, inString := 0, false
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '"':
			inString = !inString
		case inString:
		case c == '[':
			depth++
			if depth > maxDepth {
				return false
			}
		case c == ']':
			depth--
		}
	}
	return json.Valid([]byte(text))
}

func fromJSON(raw any) (Value, bool) {
	switch v := raw.(type) {
	case bool:
		return Bool(v), true
	case string:
		return String(v), true
	case json.Number:
		s := string(v)
		return numberValue(s, strings.ContainsAny(s, ".eE")), true
	case []any:
		out := make(Vector, len(v))
		for i, elem := range v {
			ev, ok := fromJSON(elem)
			if !ok {
				return nil, false
			}
			out[i] = ev
		}
		return out, true
	default:
		return nil, false
	}
}
