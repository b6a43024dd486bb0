package vfs

import (
	"strings"

	"eyeterm/internal/errors"
)

// Path is the sequence of segments from the root to a node.
type Path []string

// Home is where every session starts and where a bare "cd" leads.
var Home = Path{"home", "user"}

// Format renders a path as "/a/b"; the empty path is "/".
func Format(p Path) string {
	return "/" + strings.Join(p, "/")
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return Format(p)
}

// Join returns a new path with seg appended; p is left unchanged.
func (p Path) Join(seg string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Parent returns the enclosing path. The root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	out := make(Path, len(p)-1)
	copy(out, p[:len(p)-1])
	return out
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Resolve walks path from root. Any segment that is not a child directory
// yields an empty directory, so listings of a bad path are just empty.
func Resolve(root *Dir, path Path) *Dir {
	dir := root
	if dir == nil {
		return emptyDir
	}
	for _, seg := range path {
		child, ok := dir.Child(seg)
		if !ok {
			return emptyDir
		}
		next, ok := child.(*Dir)
		if !ok {
			return emptyDir
		}
		dir = next
	}
	return dir
}

// Change computes the directory reached from cwd by target, which may be
// absolute, relative, "~", "..", or empty (home). cwd is never modified
// and a failed walk reports target in a PathError.
func Change(root *Dir, cwd Path, target string) (Path, error) {
	if target == "" || target == "~" {
		if _, err := walkDir(root, Home); err != nil {
			return nil, err
		}
		return append(Path{}, Home...), nil
	}

	var next Path
	switch {
	case strings.HasPrefix(target, "~/"):
		next = append(Path{}, Home...)
		target = strings.TrimPrefix(target, "~/")
	case strings.HasPrefix(target, "/"):
		next = Path{}
	default:
		next = append(Path{}, cwd...)
	}

	for _, seg := range strings.Split(target, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			next = next.Parent()
			continue
		}
		dir, err := walkDir(root, next)
		if err != nil {
			return nil, err
		}
		child, ok := dir.Child(seg)
		if !ok {
			return nil, errors.NewPathError("no such directory", target, errors.NodeNotFound, nil)
		}
		if !child.IsDir() {
			return nil, errors.NewPathError("not a directory", target, errors.NotADirectory, nil)
		}
		next = next.Join(seg)
	}
	return next, nil
}

// Lookup finds the node named by name relative to cwd. name may contain
// slashes and ".." segments.
func Lookup(root *Dir, cwd Path, name string) (Node, error) {
	if name == "" {
		return nil, errors.NewPathError("no such file", name, errors.NodeNotFound, nil)
	}

	dirPath := cwd
	base := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		dirPart := name[:i]
		if dirPart == "" {
			dirPart = "/"
		}
		p, err := Change(root, cwd, dirPart)
		if err != nil {
			return nil, errors.NewPathError("no such file", name, errors.KindOf(err), err)
		}
		dirPath, base = p, name[i+1:]
	}

	switch base {
	case "", ".":
	case "..":
		dirPath = dirPath.Parent()
	default:
		dir, err := walkDir(root, dirPath)
		if err != nil {
			return nil, err
		}
		child, ok := dir.Child(base)
		if !ok {
			return nil, errors.NewPathError("no such file", name, errors.NodeNotFound, nil)
		}
		return child, nil
	}

	dir, err := walkDir(root, dirPath)
	if err != nil {
		return nil, err
	}
	return dir, nil
}

// walkDir is Resolve with errors instead of the empty fallback.
func walkDir(root *Dir, path Path) (*Dir, error) {
	if root == nil {
		return nil, errors.ErrNodeNotFound
	}
	dir := root
	for i, seg := range path {
		child, ok := dir.Child(seg)
		if !ok {
			return nil, errors.NewPathError("no such directory", Format(path[:i+1]), errors.NodeNotFound, nil)
		}
		next, ok := child.(*Dir)
		if !ok {
			return nil, errors.NewPathError("not a directory", Format(path[:i+1]), errors.NotADirectory, nil)
		}
		dir = next
	}
	return dir, nil
}
