package conformance

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/ednq/internal/edn"
	"github.com/roach88/ednq/internal/extract"
)

// Failure is one case that did not hold.
type Failure struct {
	Case    string
	Message string
}

// Report is the outcome of running a suite.
type Report struct {
	Suite    string
	Passed   int
	Failures []Failure
}

// Pass reports whether every case held.
func (r *Report) Pass() bool {
	return len(r.Failures) == 0
}

func (r *Report) fail(name, format string, args ...any) {
	r.Failures = append(r.Failures, Failure{Case: name, Message: fmt.Sprintf(format, args...)})
}

// Value renders the report in the notation, for golden files and the CLI.
func (r *Report) Value() edn.Value {
	failures := make(edn.Vector, len(r.Failures))
	for i, f := range r.Failures {
		failures[i] = edn.Map{
			{Key: edn.Keyword(":case"), Value: edn.String(f.Case)},
			{Key: edn.Keyword(":message"), Value: edn.String(f.Message)},
		}
	}
	return edn.Map{
		{Key: edn.Keyword(":suite"), Value: edn.String(r.Suite)},
		{Key: edn.Keyword(":passed"), Value: edn.Int(r.Passed)},
		{Key: edn.Keyword(":failed"), Value: edn.Int(len(r.Failures))},
		{Key: edn.Keyword(":failures"), Value: failures},
	}
}

// Run executes every case of s. A nil logger discards.
func Run(s *Suite, logger *slog.Logger) *Report {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Report{Suite: s.Name, Failures: []Failure{}}
	for _, c := range s.Cases {
		before := len(r.Failures)
		switch c.Op {
		case OpExtract:
			runExtract(r, c)
		case OpColumns:
			runColumns(r, c)
		default:
			runRead(r, c)
		}
		if len(r.Failures) == before {
			r.Passed++
			logger.Debug("case passed", "suite", s.Name, "case", c.Name)
		} else {
			logger.Debug("case failed", "suite", s.Name, "case", c.Name, "message", r.Failures[len(r.Failures)-1].Message)
		}
	}
	logger.Info("suite finished", "suite", s.Name, "passed", r.Passed, "failed", len(r.Failures))
	return r
}

func runRead(r *Report, c Case) {
	v, err := edn.Parse(c.Input, edn.Strict(c.Strict))
	if c.Error != "" {
		checkError(r, c, err)
		return
	}
	if err != nil {
		r.fail(c.Name, "unexpected error: %v", err)
		return
	}

	compact := edn.Write(v)
	if c.Expect != nil && compact != *c.Expect {
		r.fail(c.Name, "compact output %q, want %q", compact, *c.Expect)
		return
	}
	pretty := edn.Write(v, edn.Pretty())
	if c.Pretty != nil && pretty != *c.Pretty {
		r.fail(c.Name, "pretty output %q, want %q", pretty, *c.Pretty)
		return
	}
	for _, text := range []string{compact, pretty} {
		back, err := edn.Parse(text)
		if err != nil {
			r.fail(c.Name, "output %q does not read back: %v", text, err)
			return
		}
		if !edn.Equal(v, back) {
			r.fail(c.Name, "output %q reads back as %s", text, edn.Write(back))
			return
		}
	}
}

func runExtract(r *Report, c Case) {
	lit, err := extract.QueryLiteral(c.Input)
	if c.Error != "" {
		checkError(r, c, err)
		return
	}
	if err != nil {
		r.fail(c.Name, "unexpected error: %v", err)
		return
	}
	if lit != *c.Extract {
		r.fail(c.Name, "extracted %q, want %q", lit, *c.Extract)
	}
}

func runColumns(r *Report, c Case) {
	got := extract.ProjectionColumns(c.Input)
	if len(got) == 0 && len(c.Columns) == 0 {
		return
	}
	if !slices.Equal(got, c.Columns) {
		r.fail(c.Name, "columns %q, want %q", got, c.Columns)
	}
}

func checkError(r *Report, c Case, err error) {
	want := errorNames[c.Error]
	switch {
	case err == nil:
		r.fail(c.Name, "succeeded, want %s", c.Error)
	case !errors.Is(err, want):
		r.fail(c.Name, "error %v, want %s", err, c.Error)
	}
}
