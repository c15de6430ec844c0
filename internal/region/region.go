// Package region locates and rewrites the marker-delimited section of a
// README that sync-readme owns.
package region

import (
	"errors"
	"regexp"
	"strings"
)

// Marker literals recognized in the README. They are kept identical to the
// ones used by cargo-sync-readme so existing README files keep working.
const (
	Marker      = "<!-- cargo-sync-readme -->"
	MarkerStart = "<!-- cargo-sync-readme start -->"
	MarkerEnd   = "<!-- cargo-sync-readme end -->"
)

var (
	ErrNoMarkers            = errors.New("no synchronization markers found")
	ErrMultiplePlaceholders = errors.New("multiple placeholder markers found")
	ErrMultipleStarts       = errors.New("multiple start markers found")
	ErrMultipleEnds         = errors.New("multiple end markers found")
	ErrMissingEnd           = errors.New("start marker without matching end marker")
	ErrMissingStart         = errors.New("end marker without matching start marker")
	ErrStartAfterEnd        = errors.New("start marker appears after end marker")
	ErrConflictingMarkers   = errors.New("both placeholder and start/end markers found")
)

var (
	rePlaceholder = markerLine(Marker)
	reStart       = markerLine(MarkerStart)
	reEnd         = markerLine(MarkerEnd)
)

// markerLine matches a line holding exactly the marker, tolerating blanks
// around it. The match includes the line terminator when one is present so
// spans can be spliced without leaving stray newlines behind.
func markerLine(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[[:blank:]]*` + regexp.QuoteMeta(marker) + `[[:blank:]]*(?:\r?\n|\z)`)
}

// Kind discriminates the two valid marker configurations of a document.
type Kind int

const (
	// Placeholder means the document holds the single placeholder marker and
	// the synchronized region is yet to be created.
	Placeholder Kind = iota
	// Pair means the document holds a start/end marker pair delimiting a
	// previously synchronized region.
	Pair
)

// Span is the byte range of a document owned by the synchronization markers.
// The range covers the marker lines themselves; they are regenerated on every
// injection rather than preserved.
type Span struct {
	Kind       Kind
	Begin, End int
	terminated bool
}

// Scan resolves the marker configuration of doc. It returns a Span for the
// two valid configurations (one placeholder, or one start/end pair in order)
// and a sentinel error for every ambiguous or incomplete one. Scan never
// writes anything; callers must not produce output when it fails.
func Scan(doc string) (Span, error) {
	placeholders := rePlaceholder.FindAllStringIndex(doc, -1)
	starts := reStart.FindAllStringIndex(doc, -1)
	ends := reEnd.FindAllStringIndex(doc, -1)

	if len(starts) == 0 && len(ends) == 0 {
		switch len(placeholders) {
		case 0:
			return Span{}, ErrNoMarkers
		case 1:
			return span(Placeholder, placeholders[0][0], placeholders[0][1], doc), nil
		default:
			return Span{}, ErrMultiplePlaceholders
		}
	}

	switch {
	case len(placeholders) > 0:
		return Span{}, ErrConflictingMarkers
	case len(starts) > 1:
		return Span{}, ErrMultipleStarts
	case len(ends) > 1:
		return Span{}, ErrMultipleEnds
	case len(starts) == 0:
		return Span{}, ErrMissingStart
	case len(ends) == 0:
		return Span{}, ErrMissingEnd
	case starts[0][1] > ends[0][0]:
		return Span{}, ErrStartAfterEnd
	}

	return span(Pair, starts[0][0], ends[0][1], doc), nil
}

func span(kind Kind, begin, end int, doc string) Span {
	return Span{
		Kind:       kind,
		Begin:      begin,
		End:        end,
		terminated: end > begin && doc[end-1] == '\n',
	}
}

// Inject replaces the marker region of doc with block framed by the start and
// end markers and blank separator lines. Text outside the region is preserved
// byte for byte; inside the region line breaks follow the crlf flag. An empty
// block still produces a framed (empty) region. Injecting the same block into
// the result again yields identical output.
func Inject(doc, block string, crlf bool) (string, error) {
	spn, err := Scan(doc)
	if err != nil {
		return "", err
	}

	nl := "\n"
	if crlf {
		nl = "\r\n"
	}

	var b strings.Builder
	b.WriteString(doc[:spn.Begin])
	b.WriteString(MarkerStart)
	b.WriteString(nl)
	b.WriteString(nl)

	if block != "" {
		b.WriteString(block)
		b.WriteString(nl)
		b.WriteString(nl)
	}

	b.WriteString(MarkerEnd)

	if spn.terminated {
		b.WriteString(nl)
	}

	b.WriteString(doc[spn.End:])

	return b.String(), nil
}
