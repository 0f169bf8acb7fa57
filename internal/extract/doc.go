// Package extract recovers bracketed literals from free-form text.
//
// Model output rarely arrives as a clean literal. It comes wrapped in code
// fences, prefixed with "Answer:", followed by an explanation, or with the
// outer brackets missing. QueryLiteral peels those layers off and returns
// a span that is at least bracket-balanced, or ErrNotFound. It never
// returns a literal it had to guess.
//
// Projection reads the result shape of a query (its :find clause) without
// parsing the rest of the query language.
//
// Nothing here parses the notation itself; callers hand the result to
// edn.Parse when they need a value.
package extract
