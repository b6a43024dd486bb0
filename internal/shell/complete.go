package shell

import (
	"strings"
	"unicode"

	"eyeterm/internal/vfs"
)

// Complete applies tab completion to the input line. The first word
// completes against command names, later words against entries of the
// current directory (or of the directory named before the last slash).
// A single candidate is written into the input line; several are listed
// in the log; none leaves everything unchanged.
func (s *Session) Complete() {
	if !s.introComplete {
		return
	}

	input := s.input
	fields := strings.Fields(input)
	trailing := input != "" && unicode.IsSpace(rune(input[len(input)-1]))

	if len(fields) == 0 || (len(fields) == 1 && !trailing) {
		s.completeCommand(fields)
		return
	}

	token := ""
	if !trailing {
		token = fields[len(fields)-1]
	}
	s.completeEntry(input[:len(input)-len(token)], token)
}

func (s *Session) completeCommand(fields []string) {
	prefix := ""
	if len(fields) == 1 {
		prefix = fields[0]
	}

	var candidates []string
	for _, name := range CommandNames() {
		if strings.HasPrefix(name, prefix) {
			candidates = append(candidates, name)
		}
	}

	switch len(candidates) {
	case 0:
	case 1:
		s.replaceInput(candidates[0] + " ")
	default:
		s.log = append(s.log, strings.Join(candidates, " "))
	}
}

func (s *Session) completeEntry(head, token string) {
	dirPart, base := "", token
	if i := strings.LastIndex(token, "/"); i >= 0 {
		dirPart, base = token[:i+1], token[i+1:]
	}

	dir := s.Cwd()
	if dirPart != "" {
		p, err := vfs.Change(s.root, s.path, dirPart)
		if err != nil {
			return
		}
		dir = vfs.Resolve(s.root, p)
	}

	var candidates []vfs.Node
	for _, e := range dir.Entries() {
		if strings.HasPrefix(e.Name(), base) {
			candidates = append(candidates, e)
		}
	}

	switch len(candidates) {
	case 0:
	case 1:
		s.replaceInput(head + dirPart + vfs.DisplayName(candidates[0]))
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = vfs.DisplayName(c)
		}
		s.log = append(s.log, strings.Join(names, " "))
	}
}

func (s *Session) replaceInput(text string) {
	s.input = text
	s.cursor = NotBrowsing{}
}
