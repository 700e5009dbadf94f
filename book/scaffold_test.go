package book

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffoldCreatesSkeleton(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Scaffold(root, log.Default()))

	for _, dir := range []string{"figures", filepath.Join("problems", "exams"), "exams"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
	for _, file := range []string{
		"main.tex",
		filepath.Join("problems", "exams", "exam1", "ex1_prob01.tex"),
		filepath.Join("exams", "exam1.tex"),
		"Makefile",
		filepath.Join(".github", "workflows", "latex.yml"),
	} {
		_, err := os.Stat(filepath.Join(root, file))
		require.NoError(t, err, file)
	}

	main, err := os.ReadFile(filepath.Join(root, "main.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(main), `\documentclass`)
	assert.Contains(t, string(main), `themes/`)
}

func TestScaffoldDoesNotClobberExistingFiles(t *testing.T) {
	root := t.TempDir()
	mainPath := filepath.Join(root, "main.tex")
	require.NoError(t, os.WriteFile(mainPath, []byte("% my custom preamble\n"), 0o644))

	require.NoError(t, Scaffold(root, log.Default()))

	data, err := os.ReadFile(mainPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "% my custom preamble"))
}
