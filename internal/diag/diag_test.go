package diag

import (
	"bytes"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ExpectedList(nil))
	assert.Equal(t, "plates", ExpectedList([]string{"plates"}))
	assert.Equal(t, "a or b", ExpectedList([]string{"a", "b"}))
	assert.Equal(t, "a, b or c", ExpectedList([]string{"a", "b", "c"}))
}

func TestSpanIn(t *testing.T) {
	t.Parallel()

	cmdline := "fluxgridgo net.hcl platez"
	rng := SpanIn("<command-line>", cmdline, "platez")

	assert.Equal(t, "<command-line>", rng.Filename)
	assert.Equal(t, 19, rng.Start.Byte)
	assert.Equal(t, 25, rng.End.Byte)
	assert.Equal(t, 1, rng.Start.Line)

	// Unknown word collapses to the start.
	rng = SpanIn("<x>", cmdline, "nope")
	assert.Equal(t, 0, rng.Start.Byte)
	assert.Equal(t, 0, rng.End.Byte)
}

func TestError_RenderSyntheticSource(t *testing.T) {
	t.Parallel()

	cmdline := "fluxgridgo net.hcl platez"
	rng := SpanIn("<command-line>", cmdline, "platez")
	err := NewError(hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "target name not found",
		Detail:   "did you mean cheap or plates",
		Subject:  rng.Ptr(),
	}}, map[string]*hcl.File{"<command-line>": SyntheticFile(cmdline)})

	var buf bytes.Buffer
	require.NoError(t, err.Render(&buf, 80, false))

	out := buf.String()
	assert.Contains(t, out, "target name not found")
	assert.Contains(t, out, "did you mean cheap or plates")
	assert.Contains(t, out, "<command-line>")
}

func TestNewError_MergesFileMaps(t *testing.T) {
	t.Parallel()

	a := map[string]*hcl.File{"a": SyntheticFile("aaa")}
	b := map[string]*hcl.File{"b": SyntheticFile("bbb")}

	err := NewError(nil, a, b)

	require.Len(t, err.Files, 2)
	assert.Contains(t, err.Files, "a")
	assert.Contains(t, err.Files, "b")
}
