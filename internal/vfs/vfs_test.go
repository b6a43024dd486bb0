package vfs

import (
	"testing"

	"eyeterm/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T) *Dir {
	t.Helper()
	return MustDir("",
		MustDir("home",
			MustDir("user",
				NewFile("about.txt", "Welcome to THE EYE."),
				MustDir("projects",
					NewFile("nmap-scan.txt", "Scan report: All systems secure."),
					NewFile("writeup.md", "CTF Writeup"),
					MustDir("recon",
						NewFile("targets.txt", "10.0.0.1"),
					),
				),
				MustDir("empty"),
			),
		),
		MustDir("etc", NewFile("motd", "members only")),
	)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "/", Format(nil))
	assert.Equal(t, "/", Format(Path{}))
	assert.Equal(t, "/home/user", Format(Path{"home", "user"}))
	assert.Equal(t, "/home/user", Home.String())
}

func TestPathHelpers(t *testing.T) {
	p := Path{"home"}
	joined := p.Join("user")
	assert.Equal(t, Path{"home"}, p, "Join must not modify the receiver")
	assert.Equal(t, Path{"home", "user"}, joined)
	assert.Equal(t, Path{"home"}, joined.Parent())
	assert.Equal(t, Path{}, Path{}.Parent(), "root is its own parent")
	assert.True(t, joined.Equal(Home))
	assert.False(t, p.Equal(Home))
}

func TestResolve(t *testing.T) {
	root := testTree(t)

	dir := Resolve(root, Home)
	assert.Equal(t, "user", dir.Name())
	assert.Equal(t, 3, dir.Len())

	assert.Same(t, root, Resolve(root, nil))

	invalid := []Path{
		{"nope"},
		{"home", "user", "about.txt"},
		{"home", "user", "about.txt", "deeper"},
		{"", "..", "x"},
	}
	for _, p := range invalid {
		assert.NotPanics(t, func() {
			d := Resolve(root, p)
			assert.Equal(t, 0, d.Len(), "path %v should resolve to an empty directory", p)
			assert.Empty(t, d.Entries())
		})
	}

	assert.Equal(t, 0, Resolve(nil, Home).Len())
}

func TestChange(t *testing.T) {
	root := testTree(t)

	tests := []struct {
		name   string
		cwd    Path
		target string
		want   Path
	}{
		{"relative", Home, "projects", Path{"home", "user", "projects"}},
		{"multi segment", Home, "projects/recon", Path{"home", "user", "projects", "recon"}},
		{"parent", Home, "..", Path{"home"}},
		{"parent at root", Path{}, "..", Path{}},
		{"dot", Home, ".", Home},
		{"absolute", Home, "/etc", Path{"etc"}},
		{"root", Home, "/", Path{}},
		{"home", Path{"etc"}, "~", Home},
		{"empty is home", Path{"etc"}, "", Home},
		{"home relative", Path{"etc"}, "~/projects", Path{"home", "user", "projects"}},
		{"mixed", Home, "projects/../empty/", Path{"home", "user", "empty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Change(root, tt.cwd, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChangeErrors(t *testing.T) {
	root := testTree(t)
	cwd := Path{"home", "user"}

	_, err := Change(root, cwd, "nope")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = Change(root, cwd, "about.txt")
	require.Error(t, err)
	assert.True(t, errors.IsNotADirectory(err))

	_, err = Change(root, cwd, "projects/nope")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	assert.Equal(t, Path{"home", "user"}, cwd, "cwd must be untouched on failure")
}

func TestNavigationRoundTrip(t *testing.T) {
	root := testTree(t)
	start := Path{"home", "user"}

	cwd := start
	descents := []string{"projects", "recon"}
	for _, d := range descents {
		next, err := Change(root, cwd, d)
		require.NoError(t, err)
		cwd = next
	}
	for range descents {
		next, err := Change(root, cwd, "..")
		require.NoError(t, err)
		cwd = next
	}
	assert.Equal(t, start, cwd)
}

func TestLookup(t *testing.T) {
	root := testTree(t)

	n, err := Lookup(root, Home, "about.txt")
	require.NoError(t, err)
	require.IsType(t, &File{}, n)
	assert.Equal(t, "Welcome to THE EYE.", n.(*File).Text())

	n, err = Lookup(root, Home, "projects/writeup.md")
	require.NoError(t, err)
	assert.Equal(t, "writeup.md", n.Name())

	n, err = Lookup(root, Home, "projects")
	require.NoError(t, err)
	assert.True(t, n.IsDir())

	n, err = Lookup(root, Path{"home", "user", "projects"}, "../about.txt")
	require.NoError(t, err)
	assert.Equal(t, "about.txt", n.Name())

	n, err = Lookup(root, Home, "/etc/motd")
	require.NoError(t, err)
	assert.Equal(t, "members only", n.(*File).Text())

	n, err = Lookup(root, Home, "projects/")
	require.NoError(t, err)
	assert.Equal(t, "projects", n.Name())

	for _, name := range []string{"", "nope.txt", "nope/about.txt", "about.txt/x"} {
		_, err := Lookup(root, Home, name)
		assert.Error(t, err, "lookup of %q", name)
	}
}

func TestNewDirRejectsBadNames(t *testing.T) {
	_, err := NewDir("d", NewFile("a", ""), NewFile("a", ""))
	assert.Error(t, err)

	for _, name := range []string{"", ".", "..", "a/b"} {
		_, err := NewDir("d", NewFile(name, ""))
		assert.Error(t, err, "name %q", name)
	}

	assert.Panics(t, func() { MustDir("d", NewFile("..", "")) })
}

func TestEntriesSorted(t *testing.T) {
	dir := Resolve(testTree(t), Home)
	var names []string
	for _, e := range dir.Entries() {
		names = append(names, DisplayName(e))
	}
	assert.Equal(t, []string{"about.txt", "empty/", "projects/"}, names)
}
