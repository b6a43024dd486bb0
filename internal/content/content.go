// Package content holds the static tables of the terminal: the virtual
// filesystem, the boot lines, the tip pool, the help tiers, the banner and
// the informational texts. They are embedded at build time and parsed once.
package content

import (
	_ "embed"
	"sort"
	"sync"

	"eyeterm/internal/errors"
	"eyeterm/internal/vfs"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embedded []byte

// Content is immutable after Parse returns.
type Content struct {
	root         *vfs.Dir
	boot         []string
	info         map[string]string
	helpPrimary  string
	helpAdvanced string
	tips         []string
	banner       string
}

type document struct {
	Boot       []string          `yaml:"boot"`
	Filesystem yaml.Node         `yaml:"filesystem"`
	Info       map[string]string `yaml:"info"`
	Help       struct {
		Primary  string `yaml:"primary"`
		Advanced string `yaml:"advanced"`
	} `yaml:"help"`
	Tips   []string `yaml:"tips"`
	Banner string   `yaml:"banner"`
}

var (
	once       sync.Once
	defaultSet *Content
	defaultErr error
)

// Default returns the embedded content, parsing it on first use.
func Default() *Content {
	once.Do(func() {
		defaultSet, defaultErr = Parse(embedded)
	})
	if defaultErr != nil {
		// the embedded document is part of the binary; failing here is a build defect
		panic(defaultErr)
	}
	return defaultSet
}

// Parse decodes a content document.
func Parse(data []byte) (*Content, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse content")
	}

	root, err := buildDir("", &doc.Filesystem)
	if err != nil {
		return nil, err
	}
	if len(doc.Boot) == 0 {
		return nil, errors.New("content: boot sequence is empty")
	}
	if len(doc.Tips) == 0 {
		return nil, errors.New("content: tip pool is empty")
	}

	info := make(map[string]string, len(doc.Info))
	for k, v := range doc.Info {
		info[k] = v
	}

	return &Content{
		root:         root,
		boot:         append([]string(nil), doc.Boot...),
		info:         info,
		helpPrimary:  doc.Help.Primary,
		helpAdvanced: doc.Help.Advanced,
		tips:         append([]string(nil), doc.Tips...),
		banner:       doc.Banner,
	}, nil
}

func buildDir(name string, n *yaml.Node) (*vfs.Dir, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errors.NewPathError("content: expected a directory mapping", name, errors.InvalidPath, nil)
	}

	children := make([]vfs.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		switch {
		case val.Kind == yaml.MappingNode:
			sub, err := buildDir(key, val)
			if err != nil {
				return nil, err
			}
			children = append(children, sub)
		case val.Kind == yaml.ScalarNode && val.Tag != "!!null":
			children = append(children, vfs.NewFile(key, val.Value))
		default:
			return nil, errors.NewPathError("content: entry must be text or a mapping", key, errors.InvalidPath, nil)
		}
	}
	return vfs.NewDir(name, children...)
}

// Root returns the filesystem root.
func (c *Content) Root() *vfs.Dir { return c.root }

// BootLines returns a copy of the boot sequence.
func (c *Content) BootLines() []string {
	return append([]string(nil), c.boot...)
}

// Info returns the informational text published under name.
func (c *Content) Info(name string) (string, bool) {
	text, ok := c.info[name]
	return text, ok
}

// InfoNames returns the informational command names, sorted.
func (c *Content) InfoNames() []string {
	names := make([]string, 0, len(c.info))
	for k := range c.info {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Help returns the primary help tier, followed by the advanced tier when
// advanced is set.
func (c *Content) Help(advanced bool) string {
	if advanced && c.helpAdvanced != "" {
		return c.helpPrimary + "\n\n" + c.helpAdvanced
	}
	return c.helpPrimary
}

// Tips returns a copy of the tip pool.
func (c *Content) Tips() []string {
	return append([]string(nil), c.tips...)
}

// NumTips returns the size of the tip pool.
func (c *Content) NumTips() int { return len(c.tips) }

// Tip returns tip i of the pool, wrapping around.
func (c *Content) Tip(i int) string {
	if i < 0 {
		i = -i
	}
	return c.tips[i%len(c.tips)]
}

// Banner returns the ASCII art banner.
func (c *Content) Banner() string { return c.banner }
