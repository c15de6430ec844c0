package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ErrNoMembers is returned when a workspace manifest resolves to zero member
// crates.
var ErrNoMembers = errors.New("workspace has no members")

// Members expands the workspace member globs into the member manifests,
// ordered by directory. Directories matching an exclude pattern, hidden
// directories and target/ are skipped.
func (m *Manifest) Members(fsys fs.FS) ([]*Manifest, error) {
	if m.Workspace == nil {
		return nil, ErrNoMembers
	}

	include, err := compileGlobs(m.Workspace.Members)
	if err != nil {
		return nil, err
	}

	exclude, err := compileGlobs(m.Workspace.Exclude)
	if err != nil {
		return nil, err
	}

	var members []*Manifest

	err = fs.WalkDir(fsys, m.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() || p == m.dir {
			return nil
		}

		name := path.Base(p)
		if name == "target" || strings.HasPrefix(name, ".") {
			return fs.SkipDir
		}

		rel := m.relative(p)
		if matchAny(exclude, rel) {
			return fs.SkipDir
		}

		if !matchAny(include, rel) {
			return nil
		}

		member, lerr := Load(fsys, p)
		if lerr != nil {
			if errors.Is(lerr, fs.ErrNotExist) {
				return nil
			}

			return lerr
		}

		members = append(members, member)

		// Member crates own their subtree; nested workspaces are out of scope.
		return fs.SkipDir
	})
	if err != nil {
		return nil, err
	}

	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	sort.Slice(members, func(i, j int) bool { return members[i].dir < members[j].dir })

	return members, nil
}

func (m *Manifest) relative(p string) string {
	if m.dir == "." {
		return p
	}

	return strings.TrimPrefix(p, m.dir+"/")
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("workspace pattern %q: %w", pattern, err)
		}

		globs = append(globs, g)
	}

	return globs, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}

	return false
}
