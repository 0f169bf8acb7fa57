package datalog

import "strings"

// Section keywords, in the order they conventionally appear in a query.
const (
	Find  = ":find"
	Keys  = ":keys"
	Syms  = ":syms"
	Strs  = ":strs"
	With  = ":with"
	In    = ":in"
	Where = ":where"
	Rules = ":rules"
)

var sections = []string{Find, Keys, Syms, Strs, With, In, Where, Rules}

var sectionSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		m[s] = struct{}{}
	}
	return m
}()

// Sections returns the section keywords in conventional order.
// The returned slice is a copy.
func Sections() []string {
	out := make([]string, len(sections))
	copy(out, sections)
	return out
}

// IsSection reports whether kw (including its leading colon) introduces a
// query section.
func IsSection(kw string) bool {
	_, ok := sectionSet[kw]
	return ok
}

// Labels are the prose prefixes a generator puts in front of its answer.
// Longer labels come first so that "Answer:" is not mistaken for "A:".
var Labels = []string{"Answer:", "Query:", "A:"}

// StripLabel removes one leading label (case-insensitive) and the
// whitespace after it. The second result reports whether a label was found.
func StripLabel(s string) (string, bool) {
	trimmed := strings.TrimLeft(s, " \t\r\n")
	for _, l := range Labels {
		if len(trimmed) >= len(l) && strings.EqualFold(trimmed[:len(l)], l) {
			return strings.TrimLeft(trimmed[len(l):], " \t\r\n"), true
		}
	}
	return s, false
}

// IndexSection returns the byte offset of the first section keyword in s
// that stands on its own, or -1.
func IndexSection(s string) int {
	best := -1
	for _, kw := range sections {
		if i := Index(s, kw); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// Index returns the byte offset of the first occurrence of kw in s that
// stands on its own (preceded by start of text, whitespace or a delimiter
// and followed by one), or -1. ":find" does not match inside ":finder".
func Index(s, kw string) int {
	from := 0
	for from < len(s) {
		i := strings.Index(s[from:], kw)
		if i < 0 {
			return -1
		}
		i += from
		if standsAlone(s, i, len(kw)) {
			return i
		}
		from = i + len(kw)
	}
	return -1
}

func standsAlone(s string, i, n int) bool {
	if i > 0 && !isBoundary(s[i-1]) {
		return false
	}
	end := i + n
	return end == len(s) || isBoundary(s[end])
}

func isBoundary(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', '[', ']', '(', ')', '{', '}':
		return true
	}
	return false
}
