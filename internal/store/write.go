package store

import (
	"context"
	"fmt"
)

// Extraction is one recorded attempt.
type Extraction struct {
	Seq     int64
	ID      string // edn.Hash of the parsed query; empty when OK is false
	Prompt  string
	Raw     string
	Query   string
	Columns []string
	OK      bool
	Error   string
}

// Record appends e and returns its seq. e.Seq is ignored.
func (s *Store) Record(ctx context.Context, e Extraction) (int64, error) {
	ok := 0
	if e.OK {
		ok = 1
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, prompt, raw, query, columns, ok, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.Prompt,
		e.Raw,
		e.Query,
		marshalColumns(e.Columns),
		ok,
		e.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("record extraction: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record extraction: %w", err)
	}
	return seq, nil
}
