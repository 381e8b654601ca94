package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/passwd2json/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and resets flag state afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		cfgFile, verbose, logLevel = "config.yaml", false, ""
		outputPath, outputDir, xlsxPath = "", "", ""
		dryRun, sortKeys = false, false
		appConfig = nil
		rootCmd.PersistentFlags().Lookup("config").Changed = false
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	passwd := filepath.Join(dir, "passwd")
	group := filepath.Join(dir, "group")
	require.NoError(t, os.WriteFile(passwd, []byte("root:x:0:0:root:/root:/bin/bash\n"), 0o644))
	require.NoError(t, os.WriteFile(group, []byte("daemon:x:2:root,bin\n"), 0o644))
	return passwd, group
}

func TestRequireInputPaths(t *testing.T) {
	assert.ErrorIs(t, requireInputPaths(rootCmd, nil), types.ErrInsufficientArguments)
	assert.ErrorIs(t, requireInputPaths(rootCmd, []string{"/etc/passwd"}), types.ErrInsufficientArguments)
	assert.NoError(t, requireInputPaths(rootCmd, []string{"/etc/passwd", "/etc/group"}))
	assert.Error(t, requireInputPaths(rootCmd, []string{"a", "b", "c"}))
}

func TestRootRejectsMissingArguments(t *testing.T) {
	_, err := execute(t, "only-one-path")
	assert.ErrorIs(t, err, types.ErrInsufficientArguments)
}

func TestRootDryRun(t *testing.T) {
	passwd, group := writeInputs(t)

	out, err := execute(t, "--dry-run", passwd, group)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "0", decoded["root"]["uid"])
	assert.Equal(t, []any{"daemon"}, decoded["root"]["groups"])
}

func TestConvertWritesOutput(t *testing.T) {
	passwd, group := writeInputs(t)
	target := filepath.Join(t.TempDir(), "accounts.json")

	out, err := execute(t, "convert", "--output", target, passwd, group)
	require.NoError(t, err)
	assert.Equal(t, target, strings.TrimSpace(out))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestValidatePrintsSummary(t *testing.T) {
	passwd, group := writeInputs(t)

	out, err := execute(t, "validate", passwd, group)
	require.NoError(t, err)
	assert.Contains(t, out, "Inputs are valid")
	assert.Contains(t, out, "Unknown members:     1")
}

func TestExplicitMissingConfigFails(t *testing.T) {
	passwd, group := writeInputs(t)

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "--dry-run", passwd, group)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    "+Version)
}
