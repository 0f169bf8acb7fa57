package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the full root command with stdin and returns stdout, stderr
// and the returned error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ednq", cmd.Use)
	assert.Contains(t, cmd.Long, "EDN")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"read", "fmt", "extract", "columns", "nlq", "history", "conform"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	colorFlag := cmd.PersistentFlags().Lookup("color")
	require.NotNil(t, colorFlag)
	assert.Equal(t, "auto", colorFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestFmtCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	fmtCmd, _, err := cmd.Find([]string{"fmt"})
	require.NoError(t, err)

	for name, short := range map[string]string{"write": "w", "list": "l", "diff": "d", "jobs": "j"} {
		flag := fmtCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, short, flag.Shorthand)
	}
}

func TestHistoryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	limitFlag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)

	dbFlag := historyCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "1", "read", "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestInvalidColorMode(t *testing.T) {
	_, _, err := execute(t, "1", "read", "--color", "sometimes")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid color mode "sometimes"`)
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "1", "read", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConfigFileApplies(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "ednq.yaml", "reader:\n  strict: true\nwriter:\n  indent: 4\n")

	_, _, err := execute(t, "{:a 1 :a 2}", "read", "--config", cfg)
	require.Error(t, err, "strict reader rejects duplicate keys")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, _, err := execute(t, "{:a 1}", "read", "--pretty", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "{:a 1}\n", out)

	out, _, err = execute(t, "{:a 1 :b {:c 2}}", "read", "--pretty", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "{:a 1\n    :b {:c 2}}\n", out)
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "[1 2]", "read", "-v")
	require.NoError(t, err)
	assert.Equal(t, "[1 2]\n", out)
	assert.Contains(t, errOut, "read values")
	assert.Contains(t, errOut, "level=DEBUG")
}
