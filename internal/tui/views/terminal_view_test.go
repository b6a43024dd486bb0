package views

import (
	"fmt"
	"testing"

	"eyeterm/internal/tui/styles"
	"eyeterm/pkg/testutils"

	"github.com/stretchr/testify/assert"
)

// Mock model for testing
type mockModel struct {
	cwd        string
	scrollback string
	input      string
	status     string
	help       string
	booting    bool
}

func (m *mockModel) Cwd() string        { return m.cwd }
func (m *mockModel) Scrollback() string { return m.scrollback }
func (m *mockModel) InputLine() string  { return m.input }
func (m *mockModel) Status() string     { return m.status }
func (m *mockModel) HelpLine() string   { return m.help }
func (m *mockModel) Booting() bool      { return m.booting }

func TestRenderTerminal(t *testing.T) {
	tests := []struct {
		name     string
		model    *mockModel
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name: "booting",
			model: &mockModel{
				cwd:        "/home/user",
				scrollback: "[+] Booting up...",
				input:      "$ typed",
				status:     "booting",
				help:       "esc close",
				booting:    true,
			},
			contains: []string{"THE EYE", "/home/user", "[+] Booting up...", "booting", "esc close"},
			excludes: []string{"$ typed"},
		},
		{
			name: "ready",
			model: &mockModel{
				cwd:        "/home/user/projects",
				scrollback: "$ ls\nnmap-scan.txt",
				input:      "$ cat wr",
				help:       "enter submit",
			},
			contains: []string{"/home/user/projects", "$ ls", "nmap-scan.txt", "$ cat wr", "enter submit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testutils.StripANSI(RenderTerminal(tt.model, styles.Default()))

			for _, s := range tt.contains {
				assert.Contains(t, output, s, fmt.Sprintf("output should contain '%s'", s))
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s, fmt.Sprintf("output should not contain '%s'", s))
			}
		})
	}
}

func TestRenderEntry(t *testing.T) {
	th := styles.Default()
	entries := []string{
		"$ cat about.txt",
		"[+] Booting up...",
		"Command not found: sudo",
		"Welcome to THE EYE.",
		"line one\nline two",
	}
	for _, e := range entries {
		assert.Contains(t, testutils.StripANSI(RenderEntry(e, th)), e)
	}
	assert.True(t, isError("No such file: x"))
	assert.True(t, isError("Usage: cat <file>"))
	assert.False(t, isError("about.txt  contact.txt"))
}

func TestRenderLog(t *testing.T) {
	out := testutils.StripANSI(RenderLog([]string{"$ pwd", "/home/user"}, styles.Default()))
	assert.Contains(t, out, "$ pwd\n/home/user")
	assert.Empty(t, RenderLog(nil, styles.Default()))
}
