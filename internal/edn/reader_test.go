package edn

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"nil", "nil", Nil{}},
		{"true", "true", Bool(true)},
		{"false", "false", Bool(false)},
		{"int", "42", Int(42)},
		{"negative int", "-7", Int(-7)},
		{"plus sign", "+7", Int(7)},
		{"float", "3.14", Float(3.14)},
		{"exponent", "1e3", Float(1000)},
		{"upper exponent", "1E3", Float(1000)},
		{"big int suffix", "10N", Int(10)},
		{"decimal suffix", "1.5M", Float(1.5)},
		{"int overflow", "99999999999999999999", Float(1e20)},
		{"string", `"hello"`, String("hello")},
		{"escapes", `"a\nb\t\"c\"\\"`, String("a\nb\t\"c\"\\")},
		{"unknown escape", `"\q"`, String("q")},
		{"keyword", ":name", Keyword(":name")},
		{"namespaced keyword", ":person/name", Keyword(":person/name")},
		{"symbol", "?e", Symbol("?e")},
		{"operator symbol", "<=", Symbol("<=")},
		{"nil prefix symbol", "nilly", Symbol("nilly")},
		{"inf", "##Inf", Float(math.Inf(1))},
		{"negative inf", "##-Inf", Float(math.Inf(-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNaN(t *testing.T) {
	got, err := Parse("##NaN")
	require.NoError(t, err)
	f, ok := got.(Float)
	require.True(t, ok)
	assert.True(t, math.IsNaN(float64(f)))
}

func TestParseCollections(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"vector", "[1 2 3]", Vector{Int(1), Int(2), Int(3)}},
		{"empty vector", "[]", Vector{}},
		{"list", "(count ?x)", List{Symbol("count"), Symbol("?x")}},
		{"map", `{:a 1 "b" [2]}`, Map{
			{Key: Keyword(":a"), Value: Int(1)},
			{Key: String("b"), Value: Vector{Int(2)}},
		}},
		{"empty map", "{}", Map{}},
		{"set keeps order", "#{3 1 2}", Set{Int(3), Int(1), Int(2)}},
		{"nested", "[[1] (2) {3 4}]", Vector{
			Vector{Int(1)},
			List{Int(2)},
			Map{{Key: Int(3), Value: Int(4)}},
		}},
		{"generic tag", "#point [1 2]", Tagged{Tag: "point", Value: Vector{Int(1), Int(2)}}},
		{"namespaced tag", "#my/tag :x", Tagged{Tag: "my/tag", Value: Keyword(":x")}},
		{"uuid tag", `#uuid "f81d4fae-7dec-11d0-a765-00a0c91e6bf6"`, String("f81d4fae-7dec-11d0-a765-00a0c91e6bf6")},
		{"discard", "[1 #_ 2 3]", Vector{Int(1), Int(3)}},
		{"top-level discard", "#_ :skipped :kept", Keyword(":kept")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInst(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{`#inst "2024-01-15T10:30:00.000Z"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{`#inst "2024-01-15T10:30:00Z"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{`#inst "2024-01-15T12:30:00.5+02:00"`, time.Date(2024, 1, 15, 10, 30, 0, 5e8, time.UTC)},
		{`#inst "2024-01-15"`, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			inst, ok := got.(Inst)
			require.True(t, ok, "got %T", got)
			assert.True(t, tt.want.Equal(inst.Time), "got %s", inst.Time)
		})
	}
}

func TestParseInstBadPayloadIsTagged(t *testing.T) {
	got, err := Parse(`#inst "yesterday"`)
	require.NoError(t, err)
	assert.Equal(t, Tagged{Tag: "inst", Value: String("yesterday")}, got)
}

func TestParseWhitespaceAndComments(t *testing.T) {
	want := Vector{Int(1), Int(2), Int(3)}
	for _, input := range []string{
		" [1, 2 ,3] ",
		"[1 2 3]",
		";;c\n[1 2 3]",
		"[1\t2\r\n3]",
		"[1 ; one\n 2 ; two\n 3]",
		",,[1,,2,,3],,",
	} {
		t.Run(input, func(t *testing.T) {
			got, err := Parse(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseLenientRecovery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"stray closer", "[1 ) 2]", Vector{Int(1), Int(2)}},
		{"unknown character", "@foo", Symbol("foo")},
		{"unknown character in vector", "[1 @ 2]", Vector{Int(1), Int(2)}},
		{"dangling map key", "{:a 1 :b}", Map{{Key: Keyword(":a"), Value: Int(1)}}},
		{"duplicate keys kept", "{:a 1 :a 2}", Map{
			{Key: Keyword(":a"), Value: Int(1)},
			{Key: Keyword(":a"), Value: Int(2)},
		}},
		{"trailing content ignored", "[1] [2]", Vector{Int(1)}},
		{"junk after number", "12abc", Int(12)},
		{"tag without value", "[#foo]", Vector{Tagged{Tag: "foo", Value: Nil{}}}},
		{"unknown symbolic value", "##Wat", Symbol("##Wat")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapGetLastWins(t *testing.T) {
	got, err := Parse("{:a 1 :b 2 :a 3}")
	require.NoError(t, err)
	m := got.(Map)

	v, ok := m.Get(Keyword(":a"))
	require.True(t, ok)
	assert.Equal(t, Int(3), v)

	_, ok = m.Get(Keyword(":missing"))
	assert.False(t, ok)

	assert.Equal(t, []Pair{
		{Key: Keyword(":b"), Value: Int(2)},
		{Key: Keyword(":a"), Value: Int(3)},
	}, m.Entries())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyInput},
		{"whitespace only", "  ,\n", ErrEmptyInput},
		{"comment only", "; nothing here", ErrEmptyInput},
		{"only skipped characters", "@@@", ErrEmptyInput},
		{"unterminated string", `"abc`, ErrUnterminatedString},
		{"unterminated string in vector", `["abc]`, ErrUnterminatedString},
		{"trailing backslash", `"abc\`, ErrUnterminatedString},
		{"unterminated vector", "[1 2", ErrUnterminatedCollection},
		{"unterminated map", "{:a 1", ErrUnterminatedCollection},
		{"unterminated set", "#{1", ErrUnterminatedCollection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("[1\n \"abc")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, Position{Offset: 4, Line: 2, Column: 2}, pe.Pos)
	assert.Equal(t, "edn: unterminated string at 2:2", pe.Error())
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("[1 2")
	require.Error(t, err)
	assert.Equal(t, `edn: unterminated collection at 1:1: missing ']'`, err.Error())
}

func TestParseStrict(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"stray closer", "[1 ) 2]", ErrUnexpectedChar},
		{"unknown character", "@foo", ErrUnexpectedChar},
		{"junk after number", "12abc", ErrUnexpectedChar},
		{"bare colon", ": a", ErrUnexpectedChar},
		{"trailing content", "1 2", ErrTrailingContent},
		{"trailing collection", "[1] [2]", ErrTrailingContent},
		{"odd map", "{:a 1 :b}", ErrOddMap},
		{"duplicate key", "{:a 1 :a 2}", ErrDuplicateKey},
		{"duplicate set element", "#{1 1}", ErrDuplicateKey},
		{"bad inst", `#inst "yesterday"`, ErrBadTag},
		{"non-string inst", "#inst 5", ErrBadTag},
		{"bad uuid", `#uuid "not-a-uuid"`, ErrBadTag},
		{"tag without value", "[#foo]", ErrBadTag},
		{"discard without value", "[1 #_]", ErrBadTag},
		{"unknown symbolic value", "##Wat", ErrBadTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, Strict(true))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseStrictAcceptsWellFormed(t *testing.T) {
	for _, input := range []string{
		"[:find ?e :where [?e :db/id _]]",
		`{:a 1 :b #{1 2} :c #inst "2024-01-15T10:30:00Z"}`,
		`#uuid "f81d4fae-7dec-11d0-a765-00a0c91e6bf6"`,
		"  [1 2 3] ; trailing comment\n",
		"(f 1.5M 2N)",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input, Strict(true))
			assert.NoError(t, err)
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	_, err := Parse("[[[1]]]", MaxDepth(2))
	assert.ErrorIs(t, err, ErrTooDeep)

	v, err := Parse("[[[1]]]", MaxDepth(3))
	require.NoError(t, err)
	assert.Equal(t, Vector{Vector{Vector{Int(1)}}}, v)

	deep := strings.Repeat("[", DefaultMaxDepth+1) + strings.Repeat("]", DefaultMaxDepth+1)
	_, err = Parse(deep)
	assert.ErrorIs(t, err, ErrTooDeep)

	tags := strings.Repeat("#t ", 10) + "1"
	_, err = Parse(tags, MaxDepth(5))
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestParseAll(t *testing.T) {
	vals, err := ParseAll(`1 :a "s" ; done`)
	require.NoError(t, err)
	assert.Equal(t, []Value{Int(1), Keyword(":a"), String("s")}, vals)

	_, err = ParseAll("; nothing")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ParseAll("[1] [2")
	assert.ErrorIs(t, err, ErrUnterminatedCollection)
}

func TestSimpleStageAgreesWithFullGrammar(t *testing.T) {
	for _, input := range []string{
		`[1, 2.5, "x", true, false, [], [[-3e2]]]`,
		`"hi"`,
		`"héllo wörld"`,
		"12345678901234567890",
		"-0",
		"1E5",
		"[1e400]",
		" [ 0.1 , 0.2 ] ",
		`["[", "]"]`,
	} {
		t.Run(input, func(t *testing.T) {
			fast, ok := readSimple(input, DefaultMaxDepth)
			require.True(t, ok, "expected the simple stage to accept %q", input)

			full, err := newReader(input, nil).readTop()
			require.NoError(t, err)
			assert.True(t, Equal(full, fast), "simple %s, full %s", Write(fast), Write(full))
		})
	}
}

func TestSimpleStageDeclines(t *testing.T) {
	for _, input := range []string{
		"[1 2]",
		`{"a": 1}`,
		"null",
		"[null]",
		`"a\nb"`,
		":kw",
		"[1] trailing",
		"",
		"\"\xff\"",
	} {
		t.Run(input, func(t *testing.T) {
			_, ok := readSimple(input, DefaultMaxDepth)
			assert.False(t, ok)
		})
	}
}
