// Package intralink rewrites crate-relative intra-doc links to docs.rs URLs.
//
// Only destinations of the exact form `crate::path::to::item` are rewritten;
// anything else passes through untouched. This is intentionally narrow, not a
// link resolver.
package intralink

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	// reCandidate finds link destinations that claim to be crate-relative.
	reCandidate = regexp.MustCompile(`\]\((crate(?:::[^)]*)?)\)`)
	// rePath accepts the single supported destination form.
	rePath = regexp.MustCompile(`^crate(?:::[A-Za-z_][A-Za-z0-9_]*)+$`)
)

// Crate identifies the crate whose documentation is being rewritten.
type Crate struct {
	Name string
	// Lib is true when the documentation comes from a library target. The
	// rustdoc namespace on docs.rs is the crate name with dashes mapped to
	// underscores for libraries, and the verbatim crate name for binaries.
	Lib bool
}

func (c Crate) url(dest string) string {
	namespace := c.Name
	if c.Lib {
		namespace = strings.ReplaceAll(c.Name, "-", "_")
	}

	segments := strings.Split(dest, "::")[1:]

	return "https://docs.rs/" + c.Name + "/latest/" + namespace + "/" + strings.Join(segments, "/")
}

// Rewrite replaces every matching crate-relative link destination in doc with
// its docs.rs URL, leaving the link text and everything else byte for byte
// intact. Candidates that resemble the crate:: form without fully matching it
// are reported as warnings and kept unchanged, as are candidates inside code
// blocks or code spans.
func Rewrite(doc string, crate Crate) (string, []string) {
	source := []byte(doc)
	masked := codeRanges(source)

	var (
		warnings []string
		b        strings.Builder
		last     int
	)

	for _, m := range reCandidate.FindAllSubmatchIndex(source, -1) {
		begin, end := m[2], m[3]
		if covered(masked, begin) {
			continue
		}

		dest := string(source[begin:end])
		if !rePath.MatchString(dest) {
			warnings = append(warnings, fmt.Sprintf("intra-doc link `%s` does not match the supported crate:: form; left unchanged", dest))

			continue
		}

		b.Write(source[last:begin])
		b.WriteString(crate.url(dest))

		last = end
	}

	b.Write(source[last:])

	return b.String(), warnings
}

// codeRanges parses doc as Markdown and returns the byte ranges of fenced
// code blocks, indented code blocks and inline code spans. Link candidates
// inside those ranges are literal text, not links.
func codeRanges(source []byte) [][2]int {
	root := goldmark.DefaultParser().Parse(text.NewReader(source)).OwnerDocument()

	var ranges [][2]int

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			lines := node.Lines()
			if lines.Len() > 0 {
				ranges = append(ranges, [2]int{lines.At(0).Start, lines.At(lines.Len() - 1).Stop})
			}
		case ast.KindCodeSpan:
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if txt, ok := child.(*ast.Text); ok {
					ranges = append(ranges, [2]int{txt.Segment.Start, txt.Segment.Stop})
				}
			}
		}

		return ast.WalkContinue, nil
	})

	return ranges
}

func covered(ranges [][2]int, offset int) bool {
	for _, r := range ranges {
		if offset >= r[0] && offset < r[1] {
			return true
		}
	}

	return false
}
