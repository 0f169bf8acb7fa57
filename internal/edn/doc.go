// Package edn reads and writes the extensible data notation spoken by the
// database engine's REPL.
//
// The package has three parts that share one value model:
//
//   - Parse and ParseAll turn wire text into a Value tree.
//   - Write renders a Value in compact (single-line) or pretty form. Marshal
//     does the same for plain Go data (maps, slices, scalars, time.Time,
//     uuid.UUID).
//   - Canonical and Hash produce a deterministic rendering for identity.
//
// Value is a sealed interface. Only the types in this package implement it,
// so a type switch over Nil, Bool, Int, Float, String, Keyword, Symbol,
// Vector, List, Map, Set, Tagged and Inst is exhaustive.
//
// The Reader is lenient by default: a character that cannot start a value is
// skipped and reading continues. Strict(true) turns that and every other
// recovery (odd map bodies, duplicate keys, malformed #inst and #uuid) into a
// *ParseError. Parse only fails outright when it cannot make progress:
// unterminated strings and collections, or input with no value in it.
//
// Nothing here holds state between calls. Every function is safe to call
// from any number of goroutines.
package edn
