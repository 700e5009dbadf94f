package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"methods_book/book"
	"methods_book/texlog"
)

// Server exposes a read-only review UI over a generated book project:
// cached section plans (with the narrative rendered to HTML), assembled
// chapter files, and scanned problem regions.
type Server struct {
	root   string
	themes []book.ThemeSpec
	logger *log.Logger
}

func New(root string, themes []book.ThemeSpec, logger *log.Logger) (*Server, error) {
	if root == "" {
		return nil, errors.New("project root required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{root: root, themes: themes, logger: logger}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/plans", s.handlePlans)
	mux.HandleFunc("/api/plans/", s.handlePlanBySlug)
	mux.HandleFunc("/api/chapters", s.handleChapters)
	mux.HandleFunc("/api/regions", s.handleRegions)
	mux.HandleFunc("/", s.handleIndex)
	return mux
}

// --- Handlers ---

type planSummary struct {
	Slug         string `json:"slug"`
	SectionTitle string `json:"section_title"`
	Examples     int    `json:"examples"`
}

type planDetail struct {
	Slug          string           `json:"slug"`
	Plan          book.SectionPlan `json:"plan"`
	NarrativeHTML string           `json:"narrative_html"`
}

type chapterResp struct {
	Filename     string `json:"filename"`
	ChapterTitle string `json:"chapter_title"`
	Content      string `json:"content"`
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := os.ReadDir(filepath.Join(s.root, "plans"))
	if errors.Is(err, fs.ErrNotExist) {
		writeJSON(w, []planSummary{})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summaries := []planSummary{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".json")
		plan, err := s.loadPlan(slug)
		if err != nil {
			s.logger.Printf("[WARN] skipping unreadable plan %s: %v", entry.Name(), err)
			continue
		}
		summaries = append(summaries, planSummary{
			Slug:         slug,
			SectionTitle: plan.SectionTitle,
			Examples:     len(plan.Examples),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Slug < summaries[j].Slug })
	writeJSON(w, summaries)
}

func (s *Server) handlePlanBySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/api/plans/")
	if slug == "" || strings.Contains(slug, "/") || strings.Contains(slug, "..") {
		http.NotFound(w, r)
		return
	}
	plan, err := s.loadPlan(slug)
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, planDetail{
		Slug:          slug,
		Plan:          *plan,
		NarrativeHTML: renderMarkdown(plan.Narrative),
	})
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	chapters := []chapterResp{}
	for _, theme := range s.themes {
		data, err := os.ReadFile(filepath.Join(s.root, "themes", theme.Filename))
		if err != nil {
			continue
		}
		chapters = append(chapters, chapterResp{
			Filename:     theme.Filename,
			ChapterTitle: theme.ChapterTitle,
			Content:      string(data),
		})
	}
	writeJSON(w, chapters)
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	regions, err := texlog.LoadRegions(filepath.Join(s.root, "logs", "latex_problem_regions.jsonl"))
	if errors.Is(err, fs.ErrNotExist) {
		writeJSON(w, []texlog.Region{})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if regions == nil {
		regions = []texlog.Region{}
	}
	writeJSON(w, regions)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!doctype html>
<html>
<head><title>methods-book review</title></head>
<body>
<h1>methods-book review</h1>
<ul>
<li><a href="/api/plans">/api/plans</a> &mdash; cached section plans</li>
<li><a href="/api/chapters">/api/chapters</a> &mdash; assembled chapter files</li>
<li><a href="/api/regions">/api/regions</a> &mdash; scanned problem regions</li>
</ul>
</body>
</html>
`

// --- Helpers ---

func (s *Server) loadPlan(slug string) (*book.SectionPlan, error) {
	data, err := os.ReadFile(filepath.Join(s.root, "plans", slug+".json"))
	if err != nil {
		return nil, err
	}
	var plan book.SectionPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return buf.String()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
