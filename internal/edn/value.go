package edn

import (
	"strings"
	"time"
)

// Value is a sealed interface over the parsed notation.
// Only the types declared in this file implement it.
type Value interface {
	ednValue()
}

// Nil is the nil literal.
type Nil struct{}

func (Nil) ednValue() {}

// Bool is true or false.
type Bool bool

func (Bool) ednValue() {}

// Int is an integer literal. The N suffix is accepted but does not widen it.
type Int int64

func (Int) ednValue() {}

// Float is a literal with a decimal point or an exponent. The M suffix is
// accepted but does not change precision.
type Float float64

func (Float) ednValue() {}

// String holds the decoded text of a string literal.
type String string

func (String) ednValue() {}

// Keyword is a colon-prefixed identifier, stored with its colon.
type Keyword string

func (Keyword) ednValue() {}

// Namespace returns the part of a namespaced keyword before the slash,
// without the colon. ":person/name" has namespace "person"; ":name" has none.
func (k Keyword) Namespace() string {
	body := strings.TrimPrefix(string(k), ":")
	if i := strings.Index(body, "/"); i > 0 && i < len(body)-1 {
		return body[:i]
	}
	return ""
}

// Name returns the keyword without its colon and namespace.
func (k Keyword) Name() string {
	body := strings.TrimPrefix(string(k), ":")
	if i := strings.Index(body, "/"); i > 0 && i < len(body)-1 {
		return body[i+1:]
	}
	return body
}

// Symbol is any other bare identifier: query variables, operators, names.
type Symbol string

func (Symbol) ednValue() {}

// Vector is a [...] sequence.
type Vector []Value

func (Vector) ednValue() {}

// List is a (...) sequence. It differs from Vector only in its delimiters.
type List []Value

func (List) ednValue() {}

// Pair is one key/value entry of a Map.
type Pair struct {
	Key   Value
	Value Value
}

// Map is a {...} literal kept as ordered pairs. Keys may be any Value and may
// repeat; lookups see the last occurrence.
type Map []Pair

func (Map) ednValue() {}

// Get returns the value of the last pair whose key equals key.
func (m Map) Get(key Value) (Value, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if Equal(m[i].Key, key) {
			return m[i].Value, true
		}
	}
	return nil, false
}

// Entries returns the pairs with duplicate keys collapsed to their last
// occurrence, in order of that last occurrence.
func (m Map) Entries() []Pair {
	last := make(map[string]int, len(m))
	keys := make([]string, len(m))
	for i, p := range m {
		keys[i] = Canonical(p.Key)
		last[keys[i]] = i
	}
	out := make([]Pair, 0, len(last))
	for i, p := range m {
		if last[keys[i]] == i {
			out = append(out, p)
		}
	}
	return out
}

// Set is a #{...} literal. Encounter order is kept for determinism.
type Set []Value

func (Set) ednValue() {}

// Tagged is a #tag value literal whose tag is not interpreted.
type Tagged struct {
	Tag   string
	Value Value
}

func (Tagged) ednValue() {}

// Inst is the value of an #inst literal.
type Inst struct {
	time.Time
}

func (Inst) ednValue() {}
