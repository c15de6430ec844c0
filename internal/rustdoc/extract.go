// Package rustdoc extracts the module-level documentation block from a Rust
// source file.
package rustdoc

import "strings"

// docPrefix marks an inner documentation line.
const docPrefix = "//!"

// Options controls how the documentation block is assembled.
type Options struct {
	// ShowHidden keeps lines that rustdoc hides inside code fences (the ones
	// prefixed with `#`). By default they are dropped, matching docs.rs.
	ShowHidden bool
	// CRLF joins the extracted lines with \r\n instead of \n.
	CRLF bool
}

// Extraction states. Only the leading run of //! lines counts: anything
// before the first doc line is skipped, the first non-doc line after it ends
// the scan.
type state int

const (
	beforeDoc state = iota
	inDoc
	inFence
	done
)

// Extract returns the leading inner documentation of source as a single text
// block, fence delimiters included, hidden lines filtered per opts. It
// returns the empty string when source has no inner documentation; that is a
// "nothing to synchronize" condition, not an error.
func Extract(source string, opts Options) string {
	nl := "\n"
	if opts.CRLF {
		nl = "\r\n"
	}

	var lines []string

	st := beforeDoc

	for _, raw := range strings.Split(source, "\n") {
		content, ok := classify(strings.TrimSuffix(raw, "\r"))
		if !ok {
			if st == beforeDoc {
				continue
			}

			st = done

			break
		}

		switch {
		case isFence(content):
			if st == inFence {
				st = inDoc
			} else {
				st = inFence
			}
		case st == inFence && isHidden(content) && !opts.ShowHidden:
			continue
		default:
			if st == beforeDoc {
				st = inDoc
			}
		}

		lines = append(lines, content)
	}

	return strings.Join(lines, nl)
}

// classify reports whether line is an inner documentation line and, if so,
// returns its content with the //! prefix and at most one following space
// removed. Malformed markers simply do not match.
func classify(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, docPrefix)
	if !ok {
		return "", false
	}

	return strings.TrimPrefix(rest, " "), true
}

// isFence reports whether content is a code-fence delimiter line, with or
// without a language tag.
func isFence(content string) bool {
	return strings.HasPrefix(strings.TrimLeft(content, " \t"), "```")
}

// isHidden reports whether content is a rustdoc hidden line: a lone # or a
// # followed by a space. Attribute lines such as #[derive(...)] stay visible.
func isHidden(content string) bool {
	trimmed := strings.TrimLeft(content, " \t")

	return trimmed == "#" || strings.HasPrefix(trimmed, "# ")
}
