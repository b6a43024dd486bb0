package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eyeterm/internal/content"
	"eyeterm/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExecArguments(t *testing.T) {
	out, _, err := run(t, "", "exec", "pwd", "cd projects", "ls")
	require.NoError(t, err)

	want := strings.Join([]string{
		"$ pwd",
		"/home/user",
		"$ cd projects",
		"$ ls",
		"nmap-scan.txt  recon/  writeup.md",
	}, "\n") + "\n"
	assert.Equal(t, want, out)
}

func TestExecStdin(t *testing.T) {
	out, _, err := run(t, "whoami\nnope\n\nexit\npwd\n", "exec")
	require.NoError(t, err)
	assert.Equal(t, "$ whoami\nguest\n$ nope\nCommand not found: nope\n", out, "exit stops the run")
}

func TestExecClear(t *testing.T) {
	out, _, err := run(t, "", "exec", "pwd", "clear", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "$ pwd\n/home/user\n$ whoami\nguest\n", out)
}

func TestTreeCommand(t *testing.T) {
	out, _, err := run(t, "", "tree", "/home/user/events")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/events\n.\n├── ctf-night.txt\n└── workshop.txt\n", out)

	_, _, err = run(t, "", "tree", "/nope")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "eyeterm dev\n", out)
}

func TestHelpShowsBanner(t *testing.T) {
	out, _, err := run(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, strings.Split(content.Default().Banner(), "\n")[1])
	assert.Contains(t, out, "exec")
	assert.Contains(t, out, "mount")
}

func TestExplicitConfig(t *testing.T) {
	path := testutils.WriteConfig(t, "theme:\n  name: neon\n")

	_, _, err := run(t, "", "--config", path, "exec", "pwd")
	assert.Error(t, err, "invalid explicit config is fatal")

	require.NoError(t, os.WriteFile(path, []byte("theme:\n  name: matrix\n"), 0644))
	out, _, err := run(t, "", "--config", path, "exec", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "$ pwd\n/home/user\n", out)
}

func TestDebugLogsToStderr(t *testing.T) {
	_, stderr, err := run(t, "", "--debug", "exec", "nope")
	require.NoError(t, err)
	assert.Contains(t, stderr, "unknown command")
}

func TestLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "eyeterm.log")
	_, _, err := run(t, "", "--debug", "--log-file", logPath, "exec", "pwd")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dispatch")
}
