package shell

import (
	"strings"
	"testing"

	"eyeterm/internal/content"
	"eyeterm/internal/vfs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLs(t *testing.T) {
	s := newReadySession(t)

	out := output(t, s, "ls")
	entries := strings.Split(out, "  ")
	assert.Contains(t, entries, "about.txt")
	assert.Contains(t, entries, "projects/")
	assert.Equal(t, "about.txt  contact.txt  events/  projects/", out)

	assert.Equal(t, "nmap-scan.txt  recon/  writeup.md", output(t, s, "ls projects"))
	assert.Equal(t, "about.txt", output(t, s, "ls about.txt"))
	assert.Equal(t, "No such directory: nope", output(t, s, "ls nope"))
	assert.Equal(t, "(empty)", output(t, s, "ls /tmp"))
	assert.Equal(t, "about.txt  contact.txt", output(t, s, "ls *.txt"))
	assert.Equal(t, "No match: *.zip", output(t, s, "ls *.zip"))
}

func TestLsEmptyDirectory(t *testing.T) {
	s := newReadySession(t)
	s.Execute("cd /tmp")
	assert.Equal(t, "(empty)", output(t, s, "ls"))
}

func TestLsLong(t *testing.T) {
	s := newReadySession(t)
	lines := strings.Split(output(t, s, "ls -l"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "-     50 B  about.txt", lines[0])
	assert.Equal(t, "d        -  events/", lines[2])
}

func TestCatAndOpen(t *testing.T) {
	s := newReadySession(t)

	assert.Equal(t, "Welcome to THE EYE. We are a cybersecurity club...", output(t, s, "cat about.txt"))
	assert.Equal(t, "Welcome to THE EYE. We are a cybersecurity club...", output(t, s, "open about.txt"))
	assert.Equal(t, "No such file: nope.txt", output(t, s, "cat nope.txt"))
	assert.Equal(t, "projects is a directory", output(t, s, "cat projects"))
	assert.Equal(t, "Scan report: All systems secure.", output(t, s, "cat projects/nmap-scan.txt"))
	assert.Equal(t, "Usage: cat <file>", output(t, s, "cat"))
	assert.Equal(t, "Usage: open <file>", output(t, s, "open"))

	both := output(t, s, "cat about.txt nope.txt")
	assert.Equal(t, "Welcome to THE EYE. We are a cybersecurity club...\nNo such file: nope.txt", both)
}

func TestCdAndPwd(t *testing.T) {
	s := newReadySession(t)

	assert.Equal(t, "/home/user", output(t, s, "pwd"))

	added := run(t, s, "cd projects")
	assert.Equal(t, []string{"$ cd projects"}, added, "successful cd prints nothing")
	assert.Equal(t, "/home/user/projects", output(t, s, "pwd"))
	assert.Equal(t, "Scan report: All systems secure.", output(t, s, "cat nmap-scan.txt"))

	s.Execute("cd ..")
	assert.Equal(t, vfs.Home, s.Path())

	assert.Equal(t, "No such directory: nope", output(t, s, "cd nope"))
	assert.Equal(t, "Not a directory: about.txt", output(t, s, "cd about.txt"))
	assert.Equal(t, vfs.Home, s.Path(), "failed cd keeps the path")

	s.Execute("cd /")
	assert.Equal(t, "/", output(t, s, "pwd"))
	s.Execute("cd ..")
	assert.Equal(t, "/", output(t, s, "pwd"))

	s.Execute("cd")
	assert.Equal(t, vfs.Home, s.Path())
}

func TestCdRoundTrip(t *testing.T) {
	s := newReadySession(t)
	start := s.Path()

	for _, dir := range []string{"projects", "recon", "wordlists"} {
		s.Execute("cd " + dir)
	}
	require.Equal(t, "/home/user/projects/recon/wordlists", vfs.Format(s.Path()))
	for i := 0; i < 3; i++ {
		s.Execute("cd ..")
	}
	assert.Equal(t, start, s.Path())
}

func TestTree(t *testing.T) {
	s := newReadySession(t)
	s.Execute("cd projects")

	want := strings.Join([]string{
		".",
		"├── nmap-scan.txt",
		"├── recon/",
		"│   ├── targets.txt",
		"│   └── wordlists/",
		"└── writeup.md",
	}, "\n")
	assert.Equal(t, want, output(t, s, "tree"))
}

func TestFind(t *testing.T) {
	s := newReadySession(t)
	assert.Equal(t, "projects/writeup.md", output(t, s, "find *.md"))
	assert.Equal(t, "No match: *.zip", output(t, s, "find *.zip"))
	assert.Equal(t, "Usage: find <pattern>", output(t, s, "find"))
	assert.Equal(t, "Invalid pattern: [", output(t, s, "find ["))
}

func TestFile(t *testing.T) {
	s := newReadySession(t)
	assert.Equal(t, "about.txt: text/plain; charset=utf-8", output(t, s, "file about.txt"))
	assert.Equal(t, "projects: directory", output(t, s, "file projects"))
	assert.Equal(t, "No such file: nope", output(t, s, "file nope"))
	assert.Equal(t, "Usage: file <name>", output(t, s, "file"))
}

func TestUtilityCommands(t *testing.T) {
	s := newReadySession(t)

	assert.Equal(t, "hello there world", output(t, s, "echo hello  there\tworld"))
	assert.Empty(t, run(t, s, "echo")[1:])
	assert.Equal(t, "2025-03-07 09:04:05", output(t, s, "date"))
}

func TestHelpTiers(t *testing.T) {
	s := newReadySession(t)
	c := content.Default()

	assert.Equal(t, c.Help(false), output(t, s, "help"))
	assert.Equal(t, c.Help(true), output(t, s, "help -a"))
	assert.Equal(t, c.Help(true), output(t, s, "help me -a"))
	assert.NotContains(t, output(t, s, "help -x"), "Advanced:")
}

func TestTip(t *testing.T) {
	s := newReadySession(t)
	tips := content.Default().Tips()

	for i := 0; i < 10; i++ {
		out := output(t, s, "tip")
		require.True(t, strings.HasPrefix(out, "💡 "), out)
		assert.Contains(t, tips, strings.TrimPrefix(out, "💡 "))
	}
}

func TestInformationalCommands(t *testing.T) {
	s := newReadySession(t)
	c := content.Default()

	for _, name := range []string{"about", "events", "contact", "whoami"} {
		want, ok := c.Info(name)
		require.True(t, ok, name)
		assert.Equal(t, want, output(t, s, name))
	}
	assert.Equal(t, c.Banner(), output(t, s, "banner"))
}

func TestDispatchTable(t *testing.T) {
	names := CommandNames()
	assert.Contains(t, names, "clear")
	assert.Contains(t, names, "exit")
	assert.IsIncreasing(t, names)

	for _, name := range names {
		if name == "clear" || name == "exit" {
			_, ok := Lookup(name)
			assert.False(t, ok, "%s bypasses the table", name)
			continue
		}
		h, ok := Lookup(name)
		require.True(t, ok, name)
		assert.NotNil(t, h)
	}
}

func TestHandlersInIsolation(t *testing.T) {
	s := newReadySession(t)
	h, ok := Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, "a b", h(s, []string{"a", "b"}))
	assert.Empty(t, s.Log(), "handlers do not touch the log")

	cd, _ := Lookup("cd")
	assert.Empty(t, cd(s, []string{"projects"}))
	assert.Equal(t, "/home/user/projects", vfs.Format(s.Path()))
}
