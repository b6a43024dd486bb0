package shell

import (
	"sort"
	"strings"

	"eyeterm/internal/errors"
	"eyeterm/internal/log"
)

// Handler runs one command against the session and returns the text to
// append to the log; an empty string appends nothing.
type Handler func(s *Session, args []string) string

// Outcome tells the hosting view what Execute did.
type Outcome int

const (
	// Ignored: nothing was run (intro still playing, or a blank line).
	Ignored Outcome = iota
	// Continue: a command ran and the log may have grown.
	Continue
	// Cleared: the log was emptied.
	Cleared
	// Exited: the close callback fired.
	Exited
)

// clear and exit bypass the table: they never echo, never produce output
// and are not recorded in history.
const (
	cmdClear = "clear"
	cmdExit  = "exit"
)

var commands map[string]Handler

func init() {
	commands = map[string]Handler{
		// informational
		"about":   info("about"),
		"events":  info("events"),
		"contact": info("contact"),
		"whoami":  info("whoami"),
		"banner":  cmdBanner,
		"tip":     cmdTip,
		// filesystem
		"ls":   cmdLs,
		"cd":   cmdCd,
		"pwd":  cmdPwd,
		"cat":  cat("cat"),
		"open": cat("open"),
		"tree": cmdTree,
		"find": cmdFind,
		"file": cmdFile,
		// utility
		"echo":    cmdEcho,
		"date":    cmdDate,
		"history": cmdHistory,
		"help":    cmdHelp,
	}
}

// CommandNames returns every command name, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commands)+2)
	for name := range commands {
		names = append(names, name)
	}
	names = append(names, cmdClear, cmdExit)
	sort.Strings(names)
	return names
}

// Lookup returns the handler registered for name.
func Lookup(name string) (Handler, bool) {
	h, ok := commands[name]
	return h, ok
}

// Submit executes the current input line.
func (s *Session) Submit() Outcome {
	return s.Execute(s.input)
}

// Execute runs one raw input line.
func (s *Session) Execute(line string) Outcome {
	if !s.introComplete {
		return Ignored
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		s.input = ""
		return Ignored
	}
	name, args := fields[0], fields[1:]

	switch name {
	case cmdClear:
		s.log = nil
		s.input = ""
		return Cleared
	case cmdExit:
		s.Close()
		return Exited
	}

	s.log = append(s.log, Prompt+line)
	if out := s.dispatch(name, args); out != "" {
		s.log = append(s.log, out)
	}
	s.history = append(s.history, line)
	s.cursor = NotBrowsing{}
	s.input = ""
	return Continue
}

func (s *Session) dispatch(name string, args []string) string {
	h, ok := commands[name]
	if !ok {
		err := errors.NewCommandError("command not found", name, errors.UnknownCommand, nil)
		s.logger.WithError(err).Debugf("unknown command")
		return "Command not found: " + name
	}
	s.logger.With(log.F("command", name), log.F("args", len(args))).Debugf("dispatch")
	return h(s, args)
}
