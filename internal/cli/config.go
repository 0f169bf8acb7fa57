package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ednq/internal/edn"
	"github.com/roach88/ednq/internal/extract"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = ".ednq.yaml"

// Config is the on-disk configuration. Command-line flags override it.
type Config struct {
	Reader  ReaderConfig  `yaml:"reader"`
	Writer  WriterConfig  `yaml:"writer"`
	NLQ     NLQConfig     `yaml:"nlq"`
	History HistoryConfig `yaml:"history"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `yaml:"-"`
}

// ReaderConfig sets the reader mode and nesting limit.
type ReaderConfig struct {
	Strict   bool `yaml:"strict"`
	MaxDepth int  `yaml:"max_depth"`
}

// WriterConfig sets the pretty layout.
type WriterConfig struct {
	Indent      int `yaml:"indent"`
	InlineArity int `yaml:"inline_arity"`
}

// NLQConfig holds the stop sequences applied to generated text.
type NLQConfig struct {
	StopSequences []string `yaml:"stop_sequences"`
}

// HistoryConfig names the history database; empty disables recording.
type HistoryConfig struct {
	DB string `yaml:"db"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Reader: ReaderConfig{MaxDepth: edn.DefaultMaxDepth},
		Writer: WriterConfig{Indent: 2, InlineArity: edn.DefaultInlineArity},
		NLQ:    NLQConfig{StopSequences: append([]string{}, extract.DefaultStopSequences...)},
	}
}

// LoadConfig reads path over the defaults. An empty path tries
// DefaultConfigFile and falls back to defaults when it does not exist;
// an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// ParseConfig decodes YAML over the defaults. Unknown keys are errors.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Reader.MaxDepth <= 0 {
		return fmt.Errorf("reader.max_depth must be positive, got %d", c.Reader.MaxDepth)
	}
	if c.Writer.Indent < 0 {
		return fmt.Errorf("writer.indent must not be negative, got %d", c.Writer.Indent)
	}
	if c.Writer.InlineArity < 0 {
		return fmt.Errorf("writer.inline_arity must not be negative, got %d", c.Writer.InlineArity)
	}
	return nil
}

// readOptions returns the reader options, with strict taking precedence
// over the file when non-nil.
func (c *Config) readOptions(strict *bool) []edn.ReadOption {
	s := c.Reader.Strict
	if strict != nil {
		s = *strict
	}
	return []edn.ReadOption{edn.Strict(s), edn.MaxDepth(c.Reader.MaxDepth)}
}

func (c *Config) writeOptions(pretty bool) []edn.WriteOption {
	if !pretty {
		return nil
	}
	return []edn.WriteOption{
		edn.Pretty(),
		edn.WithIndent(c.Writer.Indent),
		edn.WithInlineArity(c.Writer.InlineArity),
	}
}
