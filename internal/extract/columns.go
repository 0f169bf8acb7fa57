package extract

import (
	"strings"

	"github.com/roach88/ednq/internal/datalog"
)

// Kind says how a :find element shapes the result.
type Kind int

const (
	// Variable is a bare logic variable such as ?e.
	Variable Kind = iota
	// Aggregate is a call such as (count ?x) or (pull ?e [*]).
	Aggregate
	// Collection is [?x ...]: one column holding every binding.
	Collection
	// Tuple is [?a ?b]: a single result row.
	Tuple
	// Scalar is an element followed by "." (a single value result).
	Scalar
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Aggregate:
		return "aggregate"
	case Collection:
		return "collection"
	case Tuple:
		return "tuple"
	case Scalar:
		return "scalar"
	}
	return "unknown"
}

// Column is one result column of a query.
type Column struct {
	Label string
	Kind  Kind
}

// ProjectionColumns returns the column labels of query, in order.
func ProjectionColumns(query string) []string {
	cols := Projection(query)
	if cols == nil {
		return nil
	}
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Label
	}
	return labels
}

// Projection classifies the elements of the :find clause of query. Only that
// clause is read: it ends at the next section keyword or at the closer of
// the enclosing literal. Placeholders (_ . ...) produce no column. A query
// without :find has no columns and returns nil.
//
// In map form, {:find [?a ?b] ...}, every element of the find vector is a
// column.
func Projection(query string) []Column {
	at := datalog.Index(query, datalog.Find)
	if at < 0 {
		return nil
	}
	forms := scanForms(query[at+len(datalog.Find):])
	for i, f := range forms {
		if f.open == 0 && datalog.IsSection(f.text) {
			forms = forms[:i]
			break
		}
	}
	if openedBy(query, at) == '{' && len(forms) > 0 && forms[0].open != 0 {
		forms = forms[0].kids
	}

	cols := []Column{}
	for _, f := range forms {
		switch {
		case f.open == 0 && f.text == ".":
			if len(cols) > 0 {
				cols[len(cols)-1].Kind = Scalar
			}
		case f.open == 0 && (f.text == "_" || f.text == "..."):
		case f.open == '(':
			if len(f.kids) == 0 {
				continue
			}
			cols = append(cols, Column{Label: callLabel(f), Kind: Aggregate})
		case f.open == '[':
			if c, ok := bindingColumn(f); ok {
				cols = append(cols, c)
			}
		default:
			cols = append(cols, Column{Label: f.text, Kind: Variable})
		}
	}
	return cols
}

// callLabel renders (f ?x ...) as f(?x): the first variable argument, else
// the first argument, else nothing.
func callLabel(f form) string {
	name := f.kids[0].text
	args := f.kids[1:]
	arg := ""
	for _, a := range args {
		if a.open == 0 && strings.HasPrefix(a.text, "?") {
			arg = a.text
			break
		}
	}
	if arg == "" && len(args) > 0 {
		arg = args[0].text
	}
	return name + "(" + arg + ")"
}

func bindingColumn(f form) (Column, bool) {
	kind := Tuple
	for _, k := range f.kids {
		if k.open == 0 && k.text == "..." {
			kind = Collection
		}
	}
	for _, k := range f.kids {
		if k.open == 0 && strings.HasPrefix(k.text, "?") {
			return Column{Label: k.text, Kind: kind}, true
		}
	}
	for _, k := range f.kids {
		if k.open == '(' && len(k.kids) > 0 {
			return Column{Label: callLabel(k), Kind: kind}, true
		}
	}
	return Column{}, false
}

// openedBy returns the innermost unclosed opener before at, or 0.
func openedBy(s string, at int) byte {
	var stack []byte
	inString := false
	for i := 0; i < at; i++ {
		c := s[i]
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
		case ';':
			for i < at && s[i] != '\n' {
				i++
			}
		case '[', '(', '{':
			stack = append(stack, c)
		case ']', ')', '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 {
		return 0
	}
	return stack[len(stack)-1]
}

// form is a token or a bracketed group of the loose tokenization used for
// the :find clause. text is the source span; open is 0 for tokens.
type form struct {
	text string
	open byte
	kids []form
}

// scanForms tokenizes s up to the first closer it did not open.
func scanForms(s string) []form {
	forms, _ := scanSeq(s, 0)
	return forms
}

func scanSeq(s string, pos int) ([]form, int) {
	var out []form
	for {
		f, next, ok := scanForm(s, pos)
		if !ok {
			return out, next
		}
		out = append(out, f)
		pos = next
	}
}

// scanForm reads the next form at or after pos. Whitespace, ; comments and
// #_ discarded forms are skipped. ok is false at an unopened closer or at
// the end of s, with the returned position on the closer.
func scanForm(s string, pos int) (form, int, bool) {
	for pos < len(s) {
		c := s[pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ',':
			pos++
		case c == ';':
			for pos < len(s) && s[pos] != '\n' {
				pos++
			}
		case strings.HasPrefix(s[pos:], "#_"):
			_, next, ok := scanForm(s, pos+2)
			if !ok {
				return form{}, next, false
			}
			pos = next
		case c == ']' || c == ')' || c == '}':
			return form{}, pos, false
		case c == '[' || c == '(' || c == '{':
			kids, end := scanSeq(s, pos+1)
			if end < len(s) {
				end++
			}
			return form{text: s[pos:end], open: c, kids: kids}, end, true
		case c == '"':
			end := pos + 1
			for end < len(s) && s[end] != '"' {
				if s[end] == '\\' {
					end++
				}
				end++
			}
			end = min(end+1, len(s))
			return form{text: s[pos:end]}, end, true
		default:
			end := pos
			for end < len(s) && !strings.ContainsRune(" \t\r\n,;[](){}\"", rune(s[end])) {
				end++
			}
			return form{text: s[pos:end]}, end, true
		}
	}
	return form{}, pos, false
}
