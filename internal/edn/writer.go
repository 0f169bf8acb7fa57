package edn

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultInlineArity is the longest sequence Pretty keeps on one line.
const DefaultInlineArity = 4

// Kind classifies the tokens handed to a WithColor hook.
type Kind int

const (
	KindDelim Kind = iota
	KindNil
	KindBool
	KindNumber
	KindString
	KindKeyword
	KindSymbol
	KindTag
)

// WriteOption configures Write and Marshal.
type WriteOption func(*encState)

// Pretty selects the indented, query-aware layout.
func Pretty() WriteOption {
	return func(es *encState) { es.pretty = true }
}

// WithIndent sets the spaces per depth level in pretty mode.
func WithIndent(n int) WriteOption {
	return func(es *encState) {
		if n >= 0 {
			es.indent = n
		}
	}
}

// WithInlineArity sets how many elements a sequence may have and still be
// written on one line in pretty mode.
func WithInlineArity(n int) WriteOption {
	return func(es *encState) {
		if n >= 0 {
			es.inlineArity = n
		}
	}
}

// WithColor wraps every token in fn's result. Whitespace is never passed to
// fn.
func WithColor(fn func(Kind, string) string) WriteOption {
	return func(es *encState) { es.color = fn }
}

type encState struct {
	sb          strings.Builder
	pretty      bool
	indent      int
	inlineArity int
	color       func(Kind, string) string
}

// Write renders v. It never fails: every Value has a rendering, and a nil
// Value is written as nil.
func Write(v Value, opts ...WriteOption) string {
	es := &encState{indent: 2, inlineArity: DefaultInlineArity}
	for _, opt := range opts {
		opt(es)
	}
	if es.pretty {
		es.prettyValue(v, 0)
	} else {
		es.compact(v)
	}
	return es.sb.String()
}

func (es *encState) tok(k Kind, s string) {
	if es.color != nil {
		s = es.color(k, s)
	}
	es.sb.WriteString(s)
}

func (es *encState) compact(v Value) {
	switch x := v.(type) {
	case nil, Nil:
		es.tok(KindNil, "nil")
	case Bool:
		es.tok(KindBool, strconv.FormatBool(bool(x)))
	case Int:
		es.tok(KindNumber, strconv.FormatInt(int64(x), 10))
	case Float:
		es.tok(KindNumber, formatFloat(float64(x)))
	case String:
		es.tok(KindString, quote(string(x)))
	case Keyword:
		es.tok(KindKeyword, keywordText(x))
	case Symbol:
		es.tok(KindSymbol, string(x))
	case Inst:
		es.tok(KindTag, "#inst")
		es.sb.WriteByte(' ')
		es.tok(KindString, quote(formatInst(x.Time)))
	case Tagged:
		es.tok(KindTag, "#"+x.Tag)
		es.sb.WriteByte(' ')
		es.compact(x.Value)
	case Vector:
		es.compactSeq("[", "]", x)
	case List:
		es.compactSeq("(", ")", x)
	case Set:
		es.compactSeq("#{", "}", x)
	case Map:
		es.tok(KindDelim, "{")
		for i, p := range x {
			if i > 0 {
				es.sb.WriteByte(' ')
			}
			es.compact(p.Key)
			es.sb.WriteByte(' ')
			es.compact(p.Value)
		}
		es.tok(KindDelim, "}")
	default:
		es.tok(KindString, quote(fmt.Sprint(v)))
	}
}

func (es *encState) compactSeq(open, close string, items []Value) {
	es.tok(KindDelim, open)
	for i, it := range items {
		if i > 0 {
			es.sb.WriteByte(' ')
		}
		es.compact(it)
	}
	es.tok(KindDelim, close)
}

func keywordText(k Keyword) string {
	if strings.HasPrefix(string(k), ":") {
		return string(k)
	}
	return ":" + string(k)
}

// formatFloat always leaves a '.' or an exponent so the text reads back as
// a Float.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "##NaN"
	case math.IsInf(f, 1):
		return "##Inf"
	case math.IsInf(f, -1):
		return "##-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// formatInst keeps millisecond precision when that loses nothing, which is
// how the engine prints instants.
func formatInst(t time.Time) string {
	if t.Nanosecond()%int(time.Millisecond) == 0 {
		return t.Format("2006-01-02T15:04:05.000Z07:00")
	}
	return t.Format(time.RFC3339Nano)
}

func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
