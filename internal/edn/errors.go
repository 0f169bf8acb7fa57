package edn

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by *ParseError. Match them with errors.Is.
var (
	ErrEmptyInput             = errors.New("no value in input")
	ErrUnterminatedString     = errors.New("unterminated string")
	ErrUnterminatedCollection = errors.New("unterminated collection")
	ErrTooDeep                = errors.New("nesting too deep")

	// Only returned in strict mode.
	ErrUnexpectedChar  = errors.New("unexpected character")
	ErrTrailingContent = errors.New("trailing content")
	ErrOddMap          = errors.New("map key without value")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrBadTag          = errors.New("malformed tagged literal")
)

// Position locates an error in the input. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError reports why the Reader stopped.
type ParseError struct {
	Pos Position
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("edn: %v at %s", e.Err, e.Pos)
	}
	return fmt.Sprintf("edn: %v at %s: %s", e.Err, e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
