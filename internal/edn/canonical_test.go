package edn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sorted map", "{:b 1 :a 2}", "{:a 2 :b 1}"},
		{"sorted set", "#{3 1 2}", "#{1 2 3}"},
		{"duplicate keys", "{:a 1 :a 2}", "{:a 2}"},
		{"nested", "[{:z #{:y :x}} (b a)]", "[{:z #{:x :y}} (b a)]"},
		{"inst in utc", `#inst "2024-01-15T12:30:00+02:00"`, `#inst "2024-01-15T10:30:00.000Z"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Canonical(v))
		})
	}
}

func TestCanonicalNormalizesStrings(t *testing.T) {
	decomposed := String("e\u0301")
	composed := String("\u00e9")
	assert.Equal(t, Canonical(composed), Canonical(decomposed))
}

func TestHash(t *testing.T) {
	a, err := Parse("{:find [?e] :where [[?e :a 1]]}")
	require.NoError(t, err)
	b, err := Parse("{:where [[?e :a 1]] :find [?e]}")
	require.NoError(t, err)

	ha := Hash("ednq/query/v1", a)
	assert.Len(t, ha, 64)
	assert.Equal(t, ha, Hash("ednq/query/v1", b))
	assert.NotEqual(t, ha, Hash("ednq/other/v1", a))
	assert.NotEqual(t, ha, Hash("ednq/query/v1", Vector{}))
}

func TestCanonicalAgreesWithEqual(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	pairs := [][2]Value{
		{Set{Int(1), Int(2)}, Set{Int(2), Int(1)}},
		{Inst{at}, Inst{at.In(time.FixedZone("", -5 * 3600))}},
		{Map{{Key: Int(1), Value: Nil{}}, {Key: Int(2), Value: Nil{}}}, Map{{Key: Int(2), Value: Nil{}}, {Key: Int(1), Value: Nil{}}}},
	}
	for _, p := range pairs {
		require.True(t, Equal(p[0], p[1]))
		assert.Equal(t, Canonical(p[0]), Canonical(p[1]))
	}
}
