package edn

import (
	"errors"
	"fmt"

	"github.com/roach88/ednq/internal/datalog"
)

// ErrNotQuery is returned by SplitQuery for values that are not queries.
var ErrNotQuery = errors.New("not a query")

// Clause is one section of a query: its keyword and the forms that follow
// it up to the next section.
type Clause struct {
	Keyword Keyword
	Args    []Value
}

// SplitQuery splits a vector-form query ([:find ?e :where ...]) or a
// map-form query ({:find [?e] :where [...]}) into its clauses, in source
// order.
func SplitQuery(v Value) ([]Clause, error) {
	switch q := v.(type) {
	case Vector:
		if !isQueryVector(q) {
			return nil, fmt.Errorf("%w: vector does not start with a section keyword", ErrNotQuery)
		}
		return splitVectorQuery(q), nil
	case Map:
		if len(q) == 0 {
			return nil, fmt.Errorf("%w: empty map", ErrNotQuery)
		}
		clauses := make([]Clause, 0, len(q))
		for _, p := range q {
			kw, ok := p.Key.(Keyword)
			if !ok || !datalog.IsSection(string(kw)) {
				return nil, fmt.Errorf("%w: key %s is not a section keyword", ErrNotQuery, Write(p.Key))
			}
			var args []Value
			switch body := p.Value.(type) {
			case Vector:
				args = body
			case List:
				args = body
			default:
				args = []Value{body}
			}
			clauses = append(clauses, Clause{Keyword: kw, Args: args})
		}
		return clauses, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotQuery, v)
}

// splitVectorQuery assumes q[0] is a section keyword.
func splitVectorQuery(q Vector) []Clause {
	var clauses []Clause
	for _, item := range q {
		if kw, ok := item.(Keyword); ok && datalog.IsSection(string(kw)) {
			clauses = append(clauses, Clause{Keyword: kw, Args: []Value{}})
			continue
		}
		last := &clauses[len(clauses)-1]
		last.Args = append(last.Args, item)
	}
	return clauses
}
