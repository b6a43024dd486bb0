package shell

import (
	"fmt"
	"strings"

	"eyeterm/internal/errors"
	"eyeterm/internal/vfs"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

const (
	dateLayout = "2006-01-02 15:04:05"
	tipMarker  = "💡 "
)

func info(name string) Handler {
	return func(s *Session, _ []string) string {
		text, _ := s.content.Info(name)
		return text
	}
}

func cmdBanner(s *Session, _ []string) string {
	return s.content.Banner()
}

func cmdTip(s *Session, _ []string) string {
	n := s.content.NumTips()
	if n == 0 {
		return ""
	}
	return tipMarker + s.content.Tip(s.rng.Intn(n))
}

func cmdHelp(s *Session, args []string) string {
	return s.content.Help(hasFlag(args, "-a"))
}

func cmdEcho(_ *Session, args []string) string {
	return strings.Join(args, " ")
}

func cmdDate(s *Session, _ []string) string {
	return s.now().Format(dateLayout)
}

func cmdHistory(s *Session, _ []string) string {
	lines := make([]string, len(s.history))
	for i, line := range s.history {
		lines[i] = fmt.Sprintf("%d  %s", i+1, line)
	}
	return strings.Join(lines, "\n")
}

func cmdPwd(s *Session, _ []string) string {
	return vfs.Format(s.path)
}

func cmdCd(s *Session, args []string) string {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	next, err := vfs.Change(s.root, s.path, target)
	if err != nil {
		if errors.IsNotADirectory(err) {
			return "Not a directory: " + target
		}
		return "No such directory: " + target
	}
	s.path = next
	return ""
}

func cmdLs(s *Session, args []string) string {
	long := false
	target := ""
	for _, a := range args {
		if a == "-l" {
			long = true
			continue
		}
		target = a
	}

	var entries []vfs.Node
	switch {
	case target == "":
		entries = s.Cwd().Entries()
	case vfs.IsGlob(target):
		g, err := vfs.CompileGlob(target)
		if err != nil {
			return "Invalid pattern: " + target
		}
		for _, e := range s.Cwd().Entries() {
			if g.Match(e.Name()) {
				entries = append(entries, e)
			}
		}
		if len(entries) == 0 {
			return "No match: " + target
		}
	default:
		n, err := vfs.Lookup(s.root, s.path, target)
		if err != nil {
			return "No such directory: " + target
		}
		if dir, ok := n.(*vfs.Dir); ok {
			entries = dir.Entries()
		} else {
			entries = []vfs.Node{n}
		}
	}

	if len(entries) == 0 {
		return "(empty)"
	}
	if long {
		return longListing(entries)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = vfs.DisplayName(e)
	}
	return strings.Join(names, "  ")
}

func longListing(entries []vfs.Node) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		kind, size := "d", "-"
		if f, ok := e.(*vfs.File); ok {
			kind, size = "-", humanize.Bytes(uint64(f.Size()))
		}
		lines[i] = fmt.Sprintf("%s %8s  %s", kind, size, vfs.DisplayName(e))
	}
	return strings.Join(lines, "\n")
}

func cat(name string) Handler {
	return func(s *Session, args []string) string {
		if len(args) == 0 {
			return "Usage: " + name + " <file>"
		}
		out := make([]string, len(args))
		for i, arg := range args {
			n, err := vfs.Lookup(s.root, s.path, arg)
			switch {
			case err != nil:
				out[i] = "No such file: " + arg
			case n.IsDir():
				out[i] = arg + " is a directory"
			default:
				out[i] = n.(*vfs.File).Text()
			}
		}
		return strings.Join(out, "\n")
	}
}

func cmdTree(s *Session, _ []string) string {
	return vfs.RenderTree(s.Cwd(), vfs.DefaultTreeDepth)
}

func cmdFind(s *Session, args []string) string {
	if len(args) == 0 {
		return "Usage: find <pattern>"
	}
	pattern := args[0]
	matches, err := vfs.Find(s.Cwd(), pattern)
	if err != nil {
		return "Invalid pattern: " + pattern
	}
	if len(matches) == 0 {
		return "No match: " + pattern
	}
	return strings.Join(matches, "\n")
}

func cmdFile(s *Session, args []string) string {
	if len(args) == 0 {
		return "Usage: file <name>"
	}
	out := make([]string, len(args))
	for i, arg := range args {
		n, err := vfs.Lookup(s.root, s.path, arg)
		switch {
		case err != nil:
			out[i] = "No such file: " + arg
		case n.IsDir():
			out[i] = arg + ": directory"
		default:
			mtype := mimetype.Detect([]byte(n.(*vfs.File).Text()))
			out[i] = arg + ": " + mtype.String()
		}
	}
	return strings.Join(out, "\n")
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}
