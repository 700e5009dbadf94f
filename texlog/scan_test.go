package texlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNumberedFile(t *testing.T, root, rel string, n int) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func TestCollectProblemRegionsSingleError(t *testing.T) {
	root := t.TempDir()
	writeNumberedFile(t, root, "themes/demo.tex", 40)

	logText := strings.Join([]string{
		"This is pdfTeX, Version 3.14",
		"(./themes/demo.tex",
		"! Undefined control sequence.",
		`l.20 \badmacro`,
		"",
	}, "\n")

	regions := CollectProblemRegions(logText, root, 3, log.Default())
	require.Len(t, regions, 1)

	r := regions[0]
	assert.Equal(t, "themes/demo.tex", r.File)
	assert.Equal(t, 20, r.ErrorLine)
	assert.Equal(t, 17, r.StartLine)
	assert.Equal(t, 23, r.EndLine)
	require.Len(t, r.SnippetRaw, 7)
	assert.Equal(t, "line 17", r.SnippetRaw[0])
	assert.Equal(t, "line 23", r.SnippetRaw[6])

	numbered := strings.Split(r.SnippetNumbered, "\n")
	require.Len(t, numbered, 7)
	assert.Equal(t, "   17  line 17", numbered[0])
	assert.Equal(t, "   20  line 20", numbered[3])
}

func TestCollectProblemRegionsNearestFileMarkerWins(t *testing.T) {
	root := t.TempDir()
	writeNumberedFile(t, root, "themes/first.tex", 30)
	writeNumberedFile(t, root, "exams/second.tex", 30)

	logText := strings.Join([]string{
		"(./themes/first.tex",
		"some output",
		"! Missing $ inserted.",
		"l.10 x^2",
		") (./exams/second.tex",
		"more output",
		"! Bad math environment delimiter.",
		"l.15 \\end{align}",
		"",
	}, "\n")

	regions := CollectProblemRegions(logText, root, 2, log.Default())
	require.Len(t, regions, 2)
	assert.Equal(t, "themes/first.tex", regions[0].File)
	assert.Equal(t, 10, regions[0].ErrorLine)
	assert.Equal(t, "exams/second.tex", regions[1].File)
	assert.Equal(t, 15, regions[1].ErrorLine)
}

func TestCollectProblemRegionsNoMarkerFallsBackToMain(t *testing.T) {
	root := t.TempDir()
	writeNumberedFile(t, root, "main.tex", 20)

	logText := strings.Join([]string{
		"! \\begin{aligned} allowed only in math mode.",
		"l.5 \\begin{aligned}",
		"",
	}, "\n")

	regions := CollectProblemRegions(logText, root, 10, log.Default())
	require.Len(t, regions, 1)
	assert.Equal(t, "main.tex", regions[0].File)
	assert.Equal(t, 1, regions[0].StartLine)
	assert.Equal(t, 15, regions[0].EndLine)
}

func TestCollectProblemRegionsDeduplicates(t *testing.T) {
	root := t.TempDir()
	writeNumberedFile(t, root, "themes/demo.tex", 30)

	logText := strings.Join([]string{
		"(./themes/demo.tex",
		"! Undefined control sequence.",
		"l.12 \\foo",
		"! Undefined control sequence.",
		"l.12 \\foo",
		"",
	}, "\n")

	regions := CollectProblemRegions(logText, root, 3, log.Default())
	assert.Len(t, regions, 1)
}

func TestCollectProblemRegionsSkipsMissingFile(t *testing.T) {
	root := t.TempDir()

	logText := strings.Join([]string{
		"(./themes/gone.tex",
		"! Missing $ inserted.",
		"l.7 x_1",
		"",
	}, "\n")

	regions := CollectProblemRegions(logText, root, 3, log.Default())
	assert.Empty(t, regions)
}

func TestParseErrorsRequiresSourceLine(t *testing.T) {
	// An error with no l.<num> line in the lookahead window is dropped.
	logText := strings.Join([]string{
		"! Undefined control sequence.",
		"noise", "noise", "noise", "noise", "noise",
		"l.99 \\toolate",
		"",
	}, "\n")
	assert.Empty(t, parseErrors(logText))
}

func TestWriteAndLoadRegions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "regions.jsonl")
	in := []Region{
		{File: "themes/a.tex", ErrorLine: 5, StartLine: 2, EndLine: 8, SnippetRaw: []string{"x", "y"}, SnippetNumbered: "    2  x\n    3  y"},
		{File: "main.tex", ErrorLine: 1, StartLine: 1, EndLine: 3, SnippetRaw: []string{"z"}},
	}
	require.NoError(t, WriteRegions(path, in))

	out, err := LoadRegions(path)
	require.NoError(t, err)
	require.Equal(t, in, out)
	assert.Equal(t, "x\ny", out[0].Snippet())
}
