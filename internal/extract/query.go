package extract

import (
	"errors"
	"strings"

	"github.com/roach88/ednq/internal/datalog"
)

var (
	// ErrEmpty is returned for input with nothing but whitespace.
	ErrEmpty = errors.New("extract: empty input")
	// ErrNotFound is returned when no balanced literal can be recovered.
	ErrNotFound = errors.New("extract: no query literal found")
)

// QueryLiteral recovers a query literal from generator output.
//
// Code fences and a leading "Answer:", "A:" or "Query:" label are removed
// first. Then, in order:
//
//  1. text starting with '[' yields the balanced span from there;
//  2. otherwise the first '[' anywhere yields its balanced span, unless a
//     section keyword appears before it;
//  3. otherwise text from the first section keyword to the next blank line
//     is wrapped in brackets and must balance as a whole.
//
// Step 2 defers to step 3 when a bare section keyword comes first, because
// the first '[' is then a clause of an unbracketed query, not the query.
func QueryLiteral(output string) (string, error) {
	if strings.TrimSpace(output) == "" {
		return "", ErrEmpty
	}
	text := cleanOutput(output)

	if strings.HasPrefix(text, "[") {
		if lit, ok := Balanced(text, '['); ok {
			return lit, nil
		}
	}

	kw := datalog.IndexSection(text)
	if i := strings.IndexByte(text, '['); i >= 0 && (kw < 0 || i < kw) {
		if lit, ok := Balanced(text[i:], '['); ok {
			return lit, nil
		}
	}

	if kw >= 0 {
		body := untilBlankLine(text[kw:])
		body, _ = datalog.StripLabel(body)
		candidate := "[" + strings.TrimSpace(body) + "]"
		if lit, ok := Balanced(candidate, '['); ok && lit == candidate {
			return lit, nil
		}
	}
	return "", ErrNotFound
}

func cleanOutput(output string) string {
	text := strings.TrimSpace(unfence(output))
	text = strings.Trim(text, "`")
	text, _ = datalog.StripLabel(text)
	return strings.TrimSpace(text)
}

// unfence returns the body of the first ``` block. Text without a fence is
// returned unchanged; an unclosed fence runs to the end.
func unfence(s string) string {
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}
	body := s[start+3:]
	// language tag such as ```edn or ```clojure
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "[({") {
		body = body[nl+1:]
	}
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return body
}

func untilBlankLine(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 && strings.TrimSpace(line) == "" {
			return strings.Join(lines[:i], "\n")
		}
	}
	return s
}
