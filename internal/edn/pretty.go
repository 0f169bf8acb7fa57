package edn

import (
	"strings"

	"github.com/roach88/ednq/internal/datalog"
)

// prettyValue writes v starting at the current column; continuation lines
// are indented for depth.
func (es *encState) prettyValue(v Value, depth int) {
	switch x := v.(type) {
	case Vector:
		if isQueryVector(x) {
			es.prettyQuery(x, depth)
			return
		}
		es.prettySeq("[", "]", x, depth)
	case List:
		es.prettySeq("(", ")", x, depth)
	case Set:
		es.prettySeq("#{", "}", x, depth)
	case Map:
		es.prettyMap(x, depth)
	case Tagged:
		es.tok(KindTag, "#"+x.Tag)
		if es.inlineable(x.Value) {
			es.sb.WriteByte(' ')
			es.compact(x.Value)
			return
		}
		es.newline(depth + 1)
		es.prettyValue(x.Value, depth+1)
	default:
		es.compact(v)
	}
}

func (es *encState) prettySeq(open, close string, items []Value, depth int) {
	if es.inlineableSeq(items) {
		es.compactSeq(open, close, items)
		return
	}
	es.tok(KindDelim, open)
	for i, it := range items {
		if i > 0 {
			es.newline(depth + 1)
		}
		es.prettyValue(it, depth+1)
	}
	es.tok(KindDelim, close)
}

func (es *encState) prettyMap(m Map, depth int) {
	es.tok(KindDelim, "{")
	for i, p := range m {
		if i > 0 {
			es.newline(depth + 1)
		}
		es.prettyValue(p.Key, depth+1)
		es.sb.WriteByte(' ')
		es.prettyValue(p.Value, depth+1)
	}
	es.tok(KindDelim, "}")
}

// prettyQuery puts every section on its own line. Arguments stay on their
// keyword's line when they are all short, except under :where and :rules
// where each clause gets a line.
func (es *encState) prettyQuery(q Vector, depth int) {
	es.tok(KindDelim, "[")
	for i, c := range splitVectorQuery(q) {
		if i > 0 {
			es.newline(depth + 1)
		}
		es.compact(c.Keyword)
		if c.Keyword == datalog.Where || c.Keyword == datalog.Rules || !es.inlineableAll(c.Args) {
			for _, a := range c.Args {
				es.newline(depth + 2)
				es.prettyValue(a, depth+2)
			}
			continue
		}
		for _, a := range c.Args {
			es.sb.WriteByte(' ')
			es.compact(a)
		}
	}
	es.tok(KindDelim, "]")
}

func (es *encState) newline(depth int) {
	es.sb.WriteByte('\n')
	es.sb.WriteString(strings.Repeat(" ", depth*es.indent))
}

// inlineable reports whether v fits on one line: scalars always do, maps
// only when empty, sequences when short and made of inlineable elements.
func (es *encState) inlineable(v Value) bool {
	switch x := v.(type) {
	case Vector:
		return !isQueryVector(x) && es.inlineableSeq(x)
	case List:
		return es.inlineableSeq(x)
	case Set:
		return es.inlineableSeq(x)
	case Map:
		return len(x) == 0
	case Tagged:
		return es.inlineable(x.Value)
	}
	return true
}

func (es *encState) inlineableSeq(items []Value) bool {
	return len(items) <= es.inlineArity && es.inlineableAll(items)
}

func (es *encState) inlineableAll(items []Value) bool {
	for _, it := range items {
		if !es.inlineable(it) {
			return false
		}
	}
	return true
}

func isQueryVector(v Vector) bool {
	if len(v) == 0 {
		return false
	}
	kw, ok := v[0].(Keyword)
	return ok && datalog.IsSection(string(kw))
}
