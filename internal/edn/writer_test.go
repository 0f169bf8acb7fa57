package edn

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCompact(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"nil value", Nil{}, "nil"},
		{"nil interface", nil, "nil"},
		{"bool", Bool(true), "true"},
		{"int", Int(-42), "-42"},
		{"float", Float(2.5), "2.5"},
		{"whole float", Float(1), "1.0"},
		{"negative zero", Float(math.Copysign(0, -1)), "-0.0"},
		{"large float", Float(1e21), "1e+21"},
		{"small float", Float(1e-7), "1e-07"},
		{"nan", Float(math.NaN()), "##NaN"},
		{"inf", Float(math.Inf(1)), "##Inf"},
		{"negative inf", Float(math.Inf(-1)), "##-Inf"},
		{"string", String(`say "hi"` + "\n\t\r\\"), `"say \"hi\"\n\t\r\\"`},
		{"keyword", Keyword(":person/name"), ":person/name"},
		{"keyword without colon", Keyword("name"), ":name"},
		{"symbol", Symbol("?e"), "?e"},
		{"vector", Vector{Int(1), Float(2.5), String("a")}, `[1 2.5 "a"]`},
		{"empty vector", Vector{}, "[]"},
		{"list", List{Symbol("count"), Symbol("?x")}, "(count ?x)"},
		{"set", Set{Int(1), Int(2)}, "#{1 2}"},
		{"map", Map{
			{Key: Keyword(":a"), Value: Int(1)},
			{Key: String("k"), Value: Vector{}},
		}, `{:a 1 "k" []}`},
		{"empty map", Map{}, "{}"},
		{"tagged", Tagged{Tag: "point", Value: Vector{Int(1), Int(2)}}, "#point [1 2]"},
		{"inst", Inst{time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}, `#inst "2024-01-15T10:30:00.000Z"`},
		{"inst with offset", Inst{time.Date(2024, 1, 15, 10, 30, 0, 123e6, time.FixedZone("", 2*3600))}, `#inst "2024-01-15T10:30:00.123+02:00"`},
		{"inst with nanoseconds", Inst{time.Date(2024, 1, 15, 10, 30, 0, 1, time.UTC)}, `#inst "2024-01-15T10:30:00.000000001Z"`},
		{"nested", Vector{Map{{Key: Keyword(":a"), Value: Set{Keyword(":b")}}}, List{}}, "[{:a #{:b}} ()]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Write(tt.in))
		})
	}
}

func TestWriteEscapesRoundTrip(t *testing.T) {
	literal := `"a\nb"`
	v, err := Parse(literal)
	require.NoError(t, err)
	assert.Equal(t, String("a\nb"), v)
	assert.Equal(t, literal, Write(v))
}

func TestWriteColor(t *testing.T) {
	mark := func(k Kind, s string) string {
		switch k {
		case KindKeyword:
			return "<" + s + ">"
		case KindDelim:
			return "|" + s
		}
		return s
	}
	got := Write(Vector{Keyword(":a"), Int(1)}, WithColor(mark))
	assert.Equal(t, "|[<:a> 1|]", got)

	got = Write(Map{{Key: Keyword(":a"), Value: Vector{}}}, Pretty(), WithColor(mark))
	assert.Equal(t, "|{<:a> |[|]|}", got)
}

func TestWriteOptionsIgnoreNegative(t *testing.T) {
	v := Vector{Int(1), Int(2)}
	assert.Equal(t, Write(v, Pretty()), Write(v, Pretty(), WithIndent(-1), WithInlineArity(-3)))
}
