// Package vfs models the read-only virtual filesystem browsed by the
// terminal. A tree is built once and never mutated afterwards, so a single
// tree can be shared by every session and every FUSE request.
package vfs

import (
	"sort"
	"strings"

	"eyeterm/internal/errors"
)

// Node is either a *Dir or a *File.
type Node interface {
	Name() string
	IsDir() bool
	node()
}

// Dir maps names to child nodes.
type Dir struct {
	name     string
	children map[string]Node
}

// File holds an immutable text payload.
type File struct {
	name string
	text string
}

// emptyDir is what resolution falls back to for paths that do not exist.
var emptyDir = &Dir{}

// NewFile creates a file node.
func NewFile(name, text string) *File {
	return &File{name: name, text: text}
}

// NewDir creates a directory holding children. Names must be unique and
// must not contain a slash or be "." or "..".
func NewDir(name string, children ...Node) (*Dir, error) {
	d := &Dir{name: name, children: make(map[string]Node, len(children))}
	for _, c := range children {
		if err := validName(c.Name()); err != nil {
			return nil, err
		}
		if _, exists := d.children[c.Name()]; exists {
			return nil, errors.NewPathError("duplicate entry", c.Name(), errors.InvalidPath, nil)
		}
		d.children[c.Name()] = c
	}
	return d, nil
}

// MustDir is NewDir for trees known to be valid at compile time.
func MustDir(name string, children ...Node) *Dir {
	d, err := NewDir(name, children...)
	if err != nil {
		panic(err)
	}
	return d
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return errors.NewPathError("invalid entry name", name, errors.InvalidPath, nil)
	}
	return nil
}

func (d *Dir) Name() string { return d.name }
func (d *Dir) IsDir() bool  { return true }
func (d *Dir) node()        {}

func (f *File) Name() string { return f.name }
func (f *File) IsDir() bool  { return false }
func (f *File) node()        {}

// Text returns the file payload.
func (f *File) Text() string { return f.text }

// Size returns the payload length in bytes.
func (f *File) Size() int { return len(f.text) }

// Child returns the entry called name.
func (d *Dir) Child(name string) (Node, bool) {
	n, ok := d.children[name]
	return n, ok
}

// Len returns the number of entries.
func (d *Dir) Len() int { return len(d.children) }

// Entries returns the children sorted by name.
func (d *Dir) Entries() []Node {
	entries := make([]Node, 0, len(d.children))
	for _, c := range d.children {
		entries = append(entries, c)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries
}

// DisplayName returns the node name, with a trailing slash for directories.
func DisplayName(n Node) string {
	if n.IsDir() {
		return n.Name() + "/"
	}
	return n.Name()
}
