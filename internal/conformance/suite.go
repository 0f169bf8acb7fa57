package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ednq/internal/edn"
	"github.com/roach88/ednq/internal/extract"
)

// Suite is a named list of cases.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

// Case is one check. Which expectation fields apply depends on Op.
type Case struct {
	Name string `yaml:"name"`

	// Op is "read", "extract" or "columns". Empty means read.
	Op string `yaml:"op,omitempty"`

	Input string `yaml:"input"`

	// Strict reads with edn.Strict(true). Read cases only.
	Strict bool `yaml:"strict,omitempty"`

	// Expect is the compact output of the parsed value.
	Expect *string `yaml:"expect,omitempty"`

	// Pretty is the pretty output of the parsed value.
	Pretty *string `yaml:"pretty,omitempty"`

	// Error names the failure the case must produce, see ErrorNames.
	Error string `yaml:"error,omitempty"`

	// Extract is the literal QueryLiteral must recover.
	Extract *string `yaml:"extract,omitempty"`

	// Columns are the labels ProjectionColumns must return.
	Columns []string `yaml:"columns,omitempty"`
}

// Op values.
const (
	OpRead    = "read"
	OpExtract = "extract"
	OpColumns = "columns"
)

var errorNames = map[string]error{
	"empty_input":             edn.ErrEmptyInput,
	"unterminated_string":     edn.ErrUnterminatedString,
	"unterminated_collection": edn.ErrUnterminatedCollection,
	"too_deep":                edn.ErrTooDeep,
	"unexpected_char":         edn.ErrUnexpectedChar,
	"trailing_content":        edn.ErrTrailingContent,
	"odd_map":                 edn.ErrOddMap,
	"duplicate_key":           edn.ErrDuplicateKey,
	"bad_tag":                 edn.ErrBadTag,
	"not_found":               extract.ErrNotFound,
	"empty":                   extract.ErrEmpty,
}

// ErrorNames lists the names accepted in a case's error field.
func ErrorNames() []string {
	names := make([]string, 0, len(errorNames))
	for n := range errorNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load reads and validates a suite file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates suite YAML.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSuite(&s); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &s, nil
}

func validateSuite(s *Suite) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if len(s.Cases) == 0 {
		return errors.New("cases list is required and must be non-empty")
	}
	seen := make(map[string]bool, len(s.Cases))
	for i := range s.Cases {
		c := &s.Cases[i]
		if c.Op == "" {
			c.Op = OpRead
		}
		if err := validateCase(c); err != nil {
			return fmt.Errorf("cases[%d]: %w", i, err)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

func validateCase(c *Case) error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Error != "" {
		if _, ok := errorNames[c.Error]; !ok {
			return fmt.Errorf("unknown error %q", c.Error)
		}
	}

	switch c.Op {
	case OpRead:
		if c.Extract != nil || c.Columns != nil {
			return errors.New("extract and columns do not apply to read cases")
		}
		if c.Error == "" && c.Expect == nil && c.Pretty == nil {
			return errors.New("read case needs expect, pretty or error")
		}
	case OpExtract:
		if c.Strict || c.Expect != nil || c.Pretty != nil || c.Columns != nil {
			return errors.New("only extract or error apply to extract cases")
		}
		if (c.Extract == nil) == (c.Error == "") {
			return errors.New("extract case needs exactly one of extract or error")
		}
	case OpColumns:
		if c.Strict || c.Expect != nil || c.Pretty != nil || c.Extract != nil || c.Error != "" {
			return errors.New("only columns applies to columns cases")
		}
	default:
		return fmt.Errorf("unknown op %q", c.Op)
	}
	return nil
}
