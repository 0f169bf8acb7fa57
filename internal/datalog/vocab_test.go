package datalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSection(t *testing.T) {
	for _, kw := range Sections() {
		assert.True(t, IsSection(kw), kw)
	}
	assert.False(t, IsSection(":db/id"))
	assert.False(t, IsSection("find"))
	assert.False(t, IsSection(":finder"))
}

func TestSectionsIsCopy(t *testing.T) {
	s := Sections()
	s[0] = ":mutated"
	assert.Equal(t, Find, Sections()[0])
}

func TestStripLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{"answer", "Answer: [:find ?e]", "[:find ?e]", true},
		{"short", "A: [:find ?e]", "[:find ?e]", true},
		{"query lower", "query:\n[:find ?e]", "[:find ?e]", true},
		{"leading space", "  Query: x", "x", true},
		{"none", "[:find ?e]", "[:find ?e]", false},
		{"word starting with a", "Also [:find ?e]", "Also [:find ?e]", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := StripLabel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.found, found)
		})
	}
}

func TestIndexSection(t *testing.T) {
	assert.Equal(t, 0, IndexSection(":find ?e :where [?e :a _]"))
	assert.Equal(t, 9, IndexSection("here you :find ?e"))
	assert.Equal(t, 1, IndexSection("[:where [?e]]"))
	assert.Equal(t, -1, IndexSection(":finder ?e"))
	assert.Equal(t, -1, IndexSection("a:find"))
	assert.Equal(t, -1, IndexSection("no query here"))
	// the earliest standalone keyword wins, not the first in vocabulary order
	assert.Equal(t, 0, IndexSection(":in $ :find ?e"))
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 10, Index("[:finder  :find ?e]", Find))
	assert.Equal(t, 1, Index("{:find [?a] :where []}", Find))
	assert.Equal(t, -1, Index("[:where [?e :findx]]", Find))
	assert.Equal(t, 15, Index("[:where [?e :a :find]]", Find))
}
