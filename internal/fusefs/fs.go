//go:build linux

// Package fusefs exports the virtual filesystem read-only over FUSE.
package fusefs

import (
	"context"
	"os"
	"syscall"
	"time"

	"eyeterm/internal/log"
	"eyeterm/internal/vfs"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	_ fusefs.FS                 = (*FS)(nil)
	_ fusefs.NodeStringLookuper = (*Dir)(nil)
	_ fusefs.HandleReadDirAller = (*Dir)(nil)
	_ fusefs.NodeOpener         = (*File)(nil)
	_ fusefs.HandleReadAller    = (*File)(nil)
)

// FS serves one immutable tree. Every node reports the owner of the
// serving process and the time the FS was created.
type FS struct {
	root  *vfs.Dir
	uid   uint32
	gid   uint32
	mtime time.Time
}

// New creates a filesystem over root.
func New(root *vfs.Dir) *FS {
	return &FS{
		root:  root,
		uid:   uint32(os.Getuid()),
		gid:   uint32(os.Getgid()),
		mtime: time.Now(),
	}
}

// Root implements the fusefs.FS interface, returning the root directory node.
func (f *FS) Root() (fusefs.Node, error) {
	return &Dir{fs: f, dir: f.root, path: vfs.Path{}}, nil
}

func (f *FS) node(parent vfs.Path, n vfs.Node) fusefs.Node {
	p := parent.Join(n.Name())
	switch n := n.(type) {
	case *vfs.Dir:
		return &Dir{fs: f, dir: n, path: p}
	case *vfs.File:
		return &File{fs: f, file: n, path: p}
	}
	return nil
}

// Dir is a directory of the virtual tree.
type Dir struct {
	fs   *FS
	dir  *vfs.Dir
	path vfs.Path
}

// Attr implements the Node interface.
func (d *Dir) Attr(_ context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	a.Uid = d.fs.uid
	a.Gid = d.fs.gid
	a.Mtime = d.fs.mtime
	return nil
}

// Lookup implements the NodeStringLookuper interface, finding a child node.
func (d *Dir) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	child, ok := d.dir.Child(name)
	if !ok {
		log.Debugf("fuse lookup miss: %s", vfs.Format(d.path.Join(name)))
		return nil, syscall.ENOENT
	}
	return d.fs.node(d.path, child), nil
}

// ReadDirAll implements the HandleReadDirAller interface, listing directory contents.
func (d *Dir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	entries := d.dir.Entries()
	dirents := make([]fuse.Dirent, 0, len(entries))
	for _, e := range entries {
		typ := fuse.DT_File
		if e.IsDir() {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{Name: e.Name(), Type: typ})
	}
	return dirents, nil
}

// File is a text payload of the virtual tree. It is its own handle.
type File struct {
	fs   *FS
	file *vfs.File
	path vfs.Path
}

// Attr implements the Node interface.
func (f *File) Attr(_ context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(f.file.Size())
	a.Uid = f.fs.uid
	a.Gid = f.fs.gid
	a.Mtime = f.fs.mtime
	return nil
}

// Open implements the NodeOpener interface. Only read access is granted.
func (f *File) Open(_ context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fusefs.Handle, error) {
	if !req.Flags.IsReadOnly() {
		log.LogWithFields(log.F("path", vfs.Format(f.path))).Warn("refused write access")
		return nil, syscall.EACCES
	}
	resp.Flags |= fuse.OpenKeepCache
	return f, nil
}

// ReadAll implements the HandleReadAller interface.
func (f *File) ReadAll(_ context.Context) ([]byte, error) {
	return []byte(f.file.Text()), nil
}
