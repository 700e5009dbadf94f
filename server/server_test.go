package server

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"methods_book/book"
	"methods_book/texlog"
)

var serverThemes = []book.ThemeSpec{
	{Filename: "demo.tex", ChapterTitle: "Demo Chapter", Subsections: []string{"Only Section"}},
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	srv, err := New(root, serverThemes, log.Default())
	require.NoError(t, err)
	return srv, root
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func writePlan(t *testing.T, root, slug string, plan book.SectionPlan) {
	t.Helper()
	dir := filepath.Join(root, "plans")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data, err := json.Marshal(plan)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".json"), data, 0o644))
}

func TestPlansEmptyWhenDirMissing(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv.Routes(), "/api/plans")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPlansListsAndSorts(t *testing.T) {
	srv, root := newTestServer(t)
	writePlan(t, root, "b-section", book.SectionPlan{SectionTitle: "B", Examples: []book.PlanExample{{Title: "x"}}})
	writePlan(t, root, "a-section", book.SectionPlan{SectionTitle: "A"})

	rec := get(t, srv.Routes(), "/api/plans")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		Slug         string `json:"slug"`
		SectionTitle string `json:"section_title"`
		Examples     int    `json:"examples"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a-section", got[0].Slug)
	assert.Equal(t, "b-section", got[1].Slug)
	assert.Equal(t, 1, got[1].Examples)
}

func TestPlanBySlugRendersNarrative(t *testing.T) {
	srv, root := newTestServer(t)
	writePlan(t, root, "a-section", book.SectionPlan{SectionTitle: "A", Narrative: "Some **bold** words."})

	rec := get(t, srv.Routes(), "/api/plans/a-section")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Slug          string `json:"slug"`
		NarrativeHTML string `json:"narrative_html"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "a-section", got.Slug)
	assert.Contains(t, got.NarrativeHTML, "<strong>bold</strong>")
}

func TestPlanBySlugNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, srv.Routes(), "/api/plans/nope").Code)
}

func TestPlanBySlugRejectsTraversal(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, srv.Routes(), "/api/plans/a..b").Code)
}

func TestChapters(t *testing.T) {
	srv, root := newTestServer(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "themes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "themes", "demo.tex"), []byte("\\chapter{Demo Chapter}\n"), 0o644))

	rec := get(t, srv.Routes(), "/api/chapters")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		Filename     string `json:"filename"`
		ChapterTitle string `json:"chapter_title"`
		Content      string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "demo.tex", got[0].Filename)
	assert.Contains(t, got[0].Content, "\\chapter{Demo Chapter}")
}

func TestRegions(t *testing.T) {
	srv, root := newTestServer(t)

	rec := get(t, srv.Routes(), "/api/regions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	regions := []texlog.Region{{File: "main.tex", ErrorLine: 3, StartLine: 1, EndLine: 5, SnippetRaw: []string{"a"}}}
	require.NoError(t, texlog.WriteRegions(filepath.Join(root, "logs", "latex_problem_regions.jsonl"), regions))

	rec = get(t, srv.Routes(), "/api/regions")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []texlog.Region
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, regions, got)
}

func TestIndexPage(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv.Routes(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/plans")
}
