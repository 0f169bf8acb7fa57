package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Lookup when no successful extraction has the ID.
var ErrNotFound = errors.New("extraction not found")

const selectExtraction = `
	SELECT seq, id, prompt, raw, query, columns, ok, error
	FROM extractions
`

// Recent returns up to limit extractions, newest first. A limit of zero or
// less returns all of them.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) Recent(ctx context.Context, limit int) ([]Extraction, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectExtraction+`
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query extractions: %w", err)
	}
	defer rows.Close()

	out := []Extraction{}
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate extractions: %w", err)
	}
	return out, nil
}

// Lookup returns the most recent successful extraction with the given ID.
func (s *Store) Lookup(ctx context.Context, id string) (Extraction, error) {
	row := s.db.QueryRowContext(ctx, selectExtraction+`
		WHERE id = ? AND ok = 1
		ORDER BY seq DESC
		LIMIT 1
	`, id)
	e, err := scanExtraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Extraction{}, fmt.Errorf("lookup %s: %w", id, ErrNotFound)
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row scanner) (Extraction, error) {
	var (
		e       Extraction
		columns string
		ok      int
	)
	if err := row.Scan(&e.Seq, &e.ID, &e.Prompt, &e.Raw, &e.Query, &columns, &ok, &e.Error); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Extraction{}, err
		}
		return Extraction{}, fmt.Errorf("scan extraction: %w", err)
	}
	cols, err := unmarshalColumns(columns)
	if err != nil {
		return Extraction{}, fmt.Errorf("extraction %d: %w", e.Seq, err)
	}
	e.Columns = cols
	e.OK = ok == 1
	return e, nil
}
