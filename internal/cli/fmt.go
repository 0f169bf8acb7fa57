package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/ednq/internal/edn"
)

// FmtOptions holds flags for the fmt command.
type FmtOptions struct {
	*RootOptions
	Write   bool
	List    bool
	Diff    bool
	Compact bool
	Jobs    int
}

// FmtFileResult is the outcome for one file.
type FmtFileResult struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`

	original  string
	formatted string
}

// FmtResult summarizes a fmt run.
type FmtResult struct {
	Files   []FmtFileResult `json:"files"`
	Changed int             `json:"changed"`
	Failed  int             `json:"failed"`
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FmtOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Reformat EDN files",
		Long: `Rewrite every top-level value of each file in the pretty layout
(or compact with --compact), one value per line group.

Without files, stdin is formatted to stdout. Comments and discarded
forms are not preserved.

Exit codes:
  0 - All files formatted (or already formatted)
  1 - A file did not parse, or -l/-d found unformatted files
  2 - Command error (unreadable file, write failure)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "write result to the source file")
	cmd.Flags().BoolVarP(&opts.List, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().BoolVarP(&opts.Diff, "diff", "d", false, "print diffs instead of rewriting")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "write compact form instead of pretty")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.NumCPU(), "files formatted concurrently")

	return cmd
}

func runFmt(opts *FmtOptions, files []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.config()
	logger := opts.log()

	readOpts := cfg.readOptions(nil)
	writeOpts := cfg.writeOptions(!opts.Compact)

	if len(files) == 0 {
		text, name, err := readInput(cmd, nil)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeInput, err.Error(), nil)
		}
		out, err := formatSource(text, readOpts, writeOpts)
		if err != nil {
			return formatter.fail(ExitFailure, ErrCodeParse, fmt.Sprintf("%s: %v", name, err), parseErrorDetails(err))
		}
		fmt.Fprint(formatter.Writer, out)
		return nil
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]FmtFileResult, len(files))
	g, ctx := errgroup.WithContext(cmdContext(cmd))
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := formatFile(path, readOpts, writeOpts, opts.Write)
			results[i] = res
			if err != nil {
				return err
			}
			logger.Debug("formatted file", "path", path, "changed", res.Changed, "error", res.Error)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return formatter.fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
	}

	summary := FmtResult{Files: results}
	for _, r := range results {
		if r.Error != "" {
			summary.Failed++
		} else if r.Changed {
			summary.Changed++
		}
	}

	if formatter.Format == "json" {
		if err := formatter.Success(summary); err != nil {
			return err
		}
	} else {
		outputFmtText(formatter, opts, summary)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) did not parse", summary.Failed))
	}
	if (opts.List || opts.Diff) && !opts.Write && summary.Changed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %d file(s) not formatted", ErrCodeNotFormatted, summary.Changed))
	}
	return nil
}

// formatFile formats one file. Parse failures are reported in the result;
// only a failed write is returned as an error.
func formatFile(path string, readOpts []edn.ReadOption, writeOpts []edn.WriteOption, write bool) (FmtFileResult, error) {
	res := FmtFileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}
	res.original = string(data)

	out, err := formatSource(res.original, readOpts, writeOpts)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}
	res.formatted = out
	res.Changed = out != res.original

	if write && res.Changed {
		info, err := os.Stat(path)
		if err != nil {
			return res, fmt.Errorf("writing %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return res, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return res, nil
}

// formatSource rewrites every top-level value, each followed by a newline.
func formatSource(text string, readOpts []edn.ReadOption, writeOpts []edn.WriteOption) (string, error) {
	values, err := edn.ParseAll(text, readOpts...)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(edn.Write(v, writeOpts...))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func outputFmtText(formatter *OutputFormatter, opts *FmtOptions, summary FmtResult) {
	for _, r := range summary.Files {
		switch {
		case r.Error != "":
			fmt.Fprintf(formatter.Writer, "✗ %s: %s\n", r.Path, r.Error)
		case !opts.Write && !opts.List && !opts.Diff:
			fmt.Fprint(formatter.Writer, r.formatted)
		case !r.Changed:
			formatter.VerboseLog("  %s unchanged", r.Path)
		default:
			if opts.List {
				fmt.Fprintln(formatter.Writer, r.Path)
			}
			if opts.Diff {
				fmt.Fprint(formatter.Writer, lineDiff(r.Path, r.original, r.formatted))
			}
			if opts.Write {
				formatter.VerboseLog("  %s rewritten", r.Path)
			}
		}
	}
}

// lineDiff renders a line-level diff of a file against its formatted form.
func lineDiff(path, before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s (formatted)\n", path, path)
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
