package conformance

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/ednq/internal/edn"
)

// RunWithGolden runs s and compares the pretty-printed report against
// testdata/golden/{s.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/conformance -update
func RunWithGolden(t *testing.T, s *Suite) *Report {
	t.Helper()

	report := Run(s, nil)
	AssertGolden(t, s.Name, report)
	return report
}

// AssertGolden compares an existing report against a golden file.
func AssertGolden(t *testing.T, name string, report *Report) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(edn.Write(report.Value(), edn.Pretty())+"\n"))
}
