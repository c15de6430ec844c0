package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rodaine/table"

	"github.com/cratekit/sync-readme/internal/intralink"
	"github.com/cratekit/sync-readme/internal/manifest"
	"github.com/cratekit/sync-readme/internal/region"
	"github.com/cratekit/sync-readme/internal/rustdoc"
)

const fileMode = 0o644

var errNotSynchronized = errors.New("README is not synchronized!")

func (o *options) run(cwd string) error {
	prefer, err := manifest.ParsePreferFrom(o.preferFrom)
	if err != nil {
		return err
	}

	fsys, start := rootFS(cwd)

	man, err := manifest.Find(fsys, start)
	if err != nil {
		return err
	}

	if man.IsWorkspace() {
		return o.runWorkspace(fsys, man, prefer)
	}

	return o.syncCrate(fsys, man, prefer)
}

// syncCrate runs the extract → rewrite → inject pipeline for one crate and
// writes the README back, unless check mode is on.
func (o *options) syncCrate(fsys fs.FS, man *manifest.Manifest, prefer manifest.PreferFrom) error {
	name, err := man.CrateName()
	if err != nil {
		return err
	}

	entry, err := man.EntryPoint(fsys, prefer)
	if err != nil {
		return err
	}

	source, err := fs.ReadFile(fsys, entry.Path)
	if err != nil {
		return err
	}

	doc := rustdoc.Extract(string(source), rustdoc.Options{ShowHidden: o.showHidden, CRLF: o.crlf})
	if doc == "" {
		o.warnf("%s has no inner documentation; nothing to synchronize", entry.Path)

		return nil
	}

	doc, warnings := intralink.Rewrite(doc, intralink.Crate{Name: name, Lib: entry.Kind == manifest.KindLib})
	for _, w := range warnings {
		o.warnf("%s", w)
	}

	readmePath := man.ReadmePath()

	current, err := fs.ReadFile(fsys, readmePath)
	if err != nil {
		return err
	}

	updated, err := region.Inject(string(current), doc, o.crlf)
	if err != nil {
		return fmt.Errorf("%s: %w", readmePath, err)
	}

	if o.check {
		if updated != string(current) {
			return errNotSynchronized
		}

		return nil
	}

	return os.WriteFile(hostPath(readmePath), []byte(updated), fileMode)
}

// runWorkspace synchronizes every member crate of a virtual workspace
// manifest and prints a per-crate summary. All members are attempted before
// failing the run.
func (o *options) runWorkspace(fsys fs.FS, root *manifest.Manifest, prefer manifest.PreferFrom) error {
	members, err := root.Members(fsys)
	if err != nil {
		return err
	}

	tbl := table.New("Crate", "Readme", "Status").WithWriter(o.stdout)

	var failed int

	for _, member := range members {
		name, nerr := member.CrateName()
		if nerr != nil {
			name = member.Dir()
		}

		status := "synced"
		if o.check {
			status = "up to date"
		}

		if serr := o.syncCrate(fsys, member, prefer); serr != nil {
			failed++

			if errors.Is(serr, errNotSynchronized) {
				status = "out of sync"
			} else {
				status = serr.Error()
			}
		}

		tbl.AddRow(name, hostPath(member.ReadmePath()), status)
	}

	tbl.Print()

	if failed > 0 {
		return fmt.Errorf("%d of %d crates failed to synchronize", failed, len(members))
	}

	return nil
}

// rootFS exposes the host filesystem rooted at / so manifest discovery can
// climb past the working directory.
func rootFS(dir string) (fs.FS, string) {
	start := strings.TrimPrefix(filepath.ToSlash(dir), "/")
	if start == "" {
		start = "."
	}

	return os.DirFS("/"), start
}

// hostPath converts a rootFS-relative path back to a host path.
func hostPath(p string) string {
	return filepath.FromSlash("/" + p)
}
