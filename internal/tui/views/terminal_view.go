package views

import (
	"strings"

	"eyeterm/internal/shell"
	"eyeterm/internal/tui/common"
	"eyeterm/internal/tui/styles"
)

const title = "THE EYE"

var errorPrefixes = []string{
	"Command not found: ",
	"No such file: ",
	"No such directory: ",
	"Not a directory: ",
	"No match: ",
	"Invalid pattern: ",
	"Usage: ",
}

// RenderTerminal lays out the header, scrollback, input line, status bar
// and key help.
func RenderTerminal(m common.ModelReader, th styles.Theme) string {
	var sb strings.Builder

	sb.WriteString(th.Title.Render(title))
	sb.WriteString(" ")
	sb.WriteString(th.Path.Render(m.Cwd()))
	sb.WriteString("\n")

	sb.WriteString(m.Scrollback())
	sb.WriteString("\n")

	if !m.Booting() {
		sb.WriteString(m.InputLine())
		sb.WriteString("\n")
	}
	if status := m.Status(); status != "" {
		sb.WriteString(status)
		sb.WriteString("\n")
	}
	sb.WriteString(m.HelpLine())

	return th.App.Render(sb.String())
}

// RenderLog styles every scrollback entry and joins them by newlines.
func RenderLog(entries []string, th styles.Theme) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = RenderEntry(e, th)
	}
	return strings.Join(lines, "\n")
}

// RenderEntry styles one scrollback entry by what it looks like.
func RenderEntry(entry string, th styles.Theme) string {
	switch {
	case strings.HasPrefix(entry, shell.Prompt):
		return th.Prompt.Render(shell.Prompt) + th.Echo.Render(strings.TrimPrefix(entry, shell.Prompt))
	case strings.HasPrefix(entry, "[+]"):
		return th.Boot.Render(entry)
	case isError(entry):
		return th.Error.Render(entry)
	}
	return th.Output.Render(entry)
}

func isError(entry string) bool {
	for _, p := range errorPrefixes {
		if strings.HasPrefix(entry, p) {
			return true
		}
	}
	return false
}
