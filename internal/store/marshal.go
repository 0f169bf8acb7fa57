package store

import (
	"fmt"

	"github.com/roach88/ednq/internal/edn"
)

// marshalColumns stores column labels as a vector of strings in the
// notation itself, so the column is readable with the same tools as the
// query next to it.
func marshalColumns(cols []string) string {
	if cols == nil {
		cols = []string{}
	}
	return edn.Marshal(cols)
}

// unmarshalColumns reads labels written by marshalColumns. Anything that is
// not a vector of strings is an error.
func unmarshalColumns(data string) ([]string, error) {
	if data == "" {
		return []string{}, nil
	}
	v, err := edn.Parse(data, edn.Strict(true))
	if err != nil {
		return nil, fmt.Errorf("unmarshal columns: %w", err)
	}
	vec, ok := v.(edn.Vector)
	if !ok {
		return nil, fmt.Errorf("unmarshal columns: expected vector, got %s", edn.Write(v))
	}
	cols := make([]string, len(vec))
	for i, item := range vec {
		s, ok := item.(edn.String)
		if !ok {
			return nil, fmt.Errorf("unmarshal columns: element %d is %s, not a string", i, edn.Write(item))
		}
		cols[i] = string(s)
	}
	return cols, nil
}
