package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"

	"github.com/roach88/ednq/internal/edn"
)

// MustParse reads text or fails the test.
func MustParse(t testing.TB, text string, opts ...edn.ReadOption) edn.Value {
	t.Helper()
	v, err := edn.Parse(text, opts...)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return v
}

// RequireEqualEDN fails the test when want and got are not edn.Equal. The
// message is a line diff of both values in canonical order, pretty-printed,
// so map and set ordering never shows up as a difference.
func RequireEqualEDN(t testing.TB, want, got edn.Value) {
	t.Helper()
	if edn.Equal(want, got) {
		return
	}
	t.Fatalf("values differ (-want +got):\n%s", cmp.Diff(canonicalPretty(want), canonicalPretty(got)))
}

func canonicalPretty(v edn.Value) string {
	c, err := edn.Parse(edn.Canonical(v))
	if err != nil {
		return edn.Write(v, edn.Pretty())
	}
	return edn.Write(c, edn.Pretty())
}

// Golden returns a goldie instance reading testdata/golden/*.golden.
func Golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}
