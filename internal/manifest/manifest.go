// Package manifest locates and reads Cargo.toml manifests.
//
// All filesystem access goes through fs.FS so callers decide where the
// filesystem comes from and tests can run against an in-memory one.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/pelletier/go-toml/v2"
)

// Filename is the manifest file name Cargo uses.
const Filename = "Cargo.toml"

var (
	ErrNotFound = errors.New("no Cargo.toml found in this directory or any parent")
	ErrNoName   = errors.New("manifest has no package name")
)

// Manifest is the subset of a Cargo.toml this tool cares about.
type Manifest struct {
	Package   *Package   `toml:"package"`
	Lib       *Target    `toml:"lib"`
	Bin       []Target   `toml:"bin"`
	Workspace *Workspace `toml:"workspace"`

	dir string
}

// Package mirrors the [package] table.
type Package struct {
	Name   string `toml:"name"`
	Readme string `toml:"readme"`
}

// Target mirrors a [lib] or [[bin]] table.
type Target struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Workspace mirrors the [workspace] table. Members and Exclude hold glob
// patterns relative to the workspace root.
type Workspace struct {
	Members []string `toml:"members"`
	Exclude []string `toml:"exclude"`
}

// Load reads and decodes the manifest stored in dir.
func Load(fsys fs.FS, dir string) (*Manifest, error) {
	name := path.Join(dir, Filename)

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	m.dir = dir

	return &m, nil
}

// Find climbs from dir towards the root of fsys until it finds a Cargo.toml.
func Find(fsys fs.FS, dir string) (*Manifest, error) {
	for d := path.Clean(dir); ; d = path.Dir(d) {
		m, err := Load(fsys, d)
		if err == nil {
			return m, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		if d == "." || d == "/" {
			return nil, ErrNotFound
		}
	}
}

// Dir returns the directory holding the manifest, relative to the filesystem
// it was loaded from.
func (m *Manifest) Dir() string {
	return m.dir
}

// IsWorkspace reports whether the manifest is a virtual workspace manifest:
// a [workspace] table without a [package] of its own.
func (m *Manifest) IsWorkspace() bool {
	return m.Workspace != nil && m.Package == nil
}

// CrateName returns the [package] name.
func (m *Manifest) CrateName() (string, error) {
	if m.Package == nil || m.Package.Name == "" {
		return "", ErrNoName
	}

	return m.Package.Name, nil
}

// ReadmePath returns the path of the readme file named by the manifest,
// defaulting to README.md next to it.
func (m *Manifest) ReadmePath() string {
	readme := "README.md"
	if m.Package != nil && m.Package.Readme != "" {
		readme = m.Package.Readme
	}

	return path.Join(m.dir, readme)
}
