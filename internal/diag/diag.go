// Package diag carries span-labeled errors between the pipeline stages and
// renders them. Everything is an hcl.Diagnostics underneath; sources that
// are not real files (the reconstructed command line, the generated model
// path, a solver invocation) are registered as synthetic files so their
// spans render the same way.
package diag

import (
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Error wraps diagnostics together with the file map needed to render them.
// It satisfies error so it can flow through ordinary return paths.
type Error struct {
	Diags hcl.Diagnostics
	Files map[string]*hcl.File
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Diags.Error()
}

// NewError builds an Error from diagnostics and zero or more file maps,
// merged left to right.
func NewError(diags hcl.Diagnostics, fileMaps ...map[string]*hcl.File) *Error {
	merged := make(map[string]*hcl.File)
	for _, files := range fileMaps {
		for name, f := range files {
			merged[name] = f
		}
	}
	return &Error{Diags: diags, Files: merged}
}

// Render pretty-prints the error's diagnostics with source snippets.
func (e *Error) Render(w io.Writer, width uint, color bool) error {
	return hcl.NewDiagnosticTextWriter(w, e.Files, width, color).WriteDiagnostics(e.Diags)
}

// SyntheticFile registers content that never went through the parser (a
// command line, a file name) so ranges into it can be rendered with a
// snippet. The body is empty on purpose; only the bytes matter to the
// diagnostic writer.
func SyntheticFile(content string) *hcl.File {
	return &hcl.File{Body: hcl.EmptyBody(), Bytes: []byte(content)}
}

// SpanIn locates the first occurrence of word inside content (registered
// under filename) and returns its range. A missing word collapses to the
// start of the content.
func SpanIn(filename, content, word string) hcl.Range {
	start := strings.Index(content, word)
	length := len(word)
	if start < 0 {
		start, length = 0, 0
	}
	return hcl.Range{
		Filename: filename,
		Start:    hcl.Pos{Line: 1, Column: start + 1, Byte: start},
		End:      hcl.Pos{Line: 1, Column: start + length + 1, Byte: start + length},
	}
}

// ExpectedList renders a candidate listing the way the CLI help text wants
// it: "", "a", or "a, b or c".
func ExpectedList(candidates []string) string {
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	default:
		rest := candidates[:len(candidates)-1]
		return strings.Join(rest, ", ") + " or " + candidates[len(candidates)-1]
	}
}
