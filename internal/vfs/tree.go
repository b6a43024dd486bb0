package vfs

import (
	"strings"

	"eyeterm/internal/errors"

	"github.com/gobwas/glob"
)

// DefaultTreeDepth bounds RenderTree so a deep tree cannot flood the log.
const DefaultTreeDepth = 8

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

// RenderTree draws dir below a "." header. Directories deeper than
// maxDepth are listed but not expanded.
func RenderTree(dir *Dir, maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = DefaultTreeDepth
	}
	var sb strings.Builder
	sb.WriteString(".")
	renderLevel(&sb, dir, "", 1, maxDepth)
	return sb.String()
}

func renderLevel(sb *strings.Builder, dir *Dir, prefix string, depth, maxDepth int) {
	entries := dir.Entries()
	for i, e := range entries {
		last := i == len(entries)-1
		branch, indent := branchMid, indentMid
		if last {
			branch, indent = branchLast, indentLast
		}
		sb.WriteString("\n")
		sb.WriteString(prefix + branch + DisplayName(e))

		if sub, ok := e.(*Dir); ok && depth < maxDepth {
			renderLevel(sb, sub, prefix+indent, depth+1, maxDepth)
		}
	}
}

// WalkFunc is called for every node below the walk root with its path
// relative to that root.
type WalkFunc func(rel Path, n Node)

// Walk visits the subtree of dir depth-first in name order.
func Walk(dir *Dir, fn WalkFunc) {
	walk(dir, Path{}, fn)
}

func walk(dir *Dir, rel Path, fn WalkFunc) {
	for _, e := range dir.Entries() {
		p := rel.Join(e.Name())
		fn(p, e)
		if sub, ok := e.(*Dir); ok {
			walk(sub, p, fn)
		}
	}
}

// Find returns the relative paths of every node below dir whose name
// matches the glob pattern. Directory results carry a trailing slash.
func Find(dir *Dir, pattern string) ([]string, error) {
	g, err := CompileGlob(pattern)
	if err != nil {
		return nil, err
	}
	var matches []string
	Walk(dir, func(rel Path, n Node) {
		if g.Match(n.Name()) {
			name := strings.Join(rel, "/")
			if n.IsDir() {
				name += "/"
			}
			matches = append(matches, name)
		}
	})
	return matches, nil
}

// CompileGlob compiles a shell-style pattern matched against single names.
func CompileGlob(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.NewPathError("invalid pattern", pattern, errors.InvalidPath, err)
	}
	return g, nil
}

// IsGlob reports whether s contains glob metacharacters.
func IsGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
