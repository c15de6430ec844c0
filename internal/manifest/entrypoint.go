package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// TargetKind tells which kind of target the documentation comes from.
type TargetKind int

const (
	KindLib TargetKind = iota
	KindBin
)

// PreferFrom is the user's choice between library and binary documentation
// when a crate defines both.
type PreferFrom string

const (
	PreferNone PreferFrom = ""
	PreferLib  PreferFrom = "lib"
	PreferBin  PreferFrom = "bin"
)

// ParsePreferFrom validates the --prefer-doc-from flag value.
func ParsePreferFrom(s string) (PreferFrom, error) {
	switch p := PreferFrom(s); p {
	case PreferNone, PreferLib, PreferBin:
		return p, nil
	default:
		return PreferNone, fmt.Errorf("invalid value %q for prefer-doc-from, expected lib or bin", s)
	}
}

// EntryPoint is the source file whose inner documentation gets synchronized.
type EntryPoint struct {
	Path string
	Kind TargetKind
}

var (
	ErrNoEntryPoint        = errors.New("cannot find an entry point (no [lib]/[[bin]] path, src/lib.rs or src/main.rs)")
	ErrAmbiguousEntryPoint = errors.New("crate defines both a library and a binary; use --prefer-doc-from to pick which one to read documentation from")
)

// EntryPoint resolves the entry source file of the crate: an explicit [lib]
// or [[bin]] path when the manifest has one, the conventional src/lib.rs or
// src/main.rs otherwise. When both a library and a binary exist the choice
// must be made with prefer.
func (m *Manifest) EntryPoint(fsys fs.FS, prefer PreferFrom) (EntryPoint, error) {
	lib := m.targetPath(fsys, m.Lib, "src/lib.rs")

	var binTarget *Target
	if len(m.Bin) > 0 {
		binTarget = &m.Bin[0]
	}

	bin := m.targetPath(fsys, binTarget, "src/main.rs")

	switch prefer {
	case PreferLib:
		if lib == "" {
			return EntryPoint{}, ErrNoEntryPoint
		}

		return EntryPoint{Path: lib, Kind: KindLib}, nil
	case PreferBin:
		if bin == "" {
			return EntryPoint{}, ErrNoEntryPoint
		}

		return EntryPoint{Path: bin, Kind: KindBin}, nil
	}

	switch {
	case lib != "" && bin != "":
		return EntryPoint{}, ErrAmbiguousEntryPoint
	case lib != "":
		return EntryPoint{Path: lib, Kind: KindLib}, nil
	case bin != "":
		return EntryPoint{Path: bin, Kind: KindBin}, nil
	default:
		return EntryPoint{}, ErrNoEntryPoint
	}
}

// targetPath returns the manifest-relative source path for a target: the
// explicit path when declared, the conventional one when the file exists,
// empty otherwise.
func (m *Manifest) targetPath(fsys fs.FS, target *Target, conventional string) string {
	if target != nil && target.Path != "" {
		return path.Join(m.dir, target.Path)
	}

	p := path.Join(m.dir, conventional)
	if _, err := fs.Stat(fsys, p); err != nil {
		return ""
	}

	return p
}
