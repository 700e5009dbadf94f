package generator

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"methods_book/book"
)

const planMaxOutputTokens = 4000

// Planner produces one SectionPlan per (chapter, section), caching each
// under plans/<slug>.json. A cached plan is used as-is and never
// regenerated while the file exists.
type Planner struct {
	Client Client
	Model  string
	Logger *log.Logger
}

// GeneratePlans walks the theme catalog and returns every plan it could
// load or generate. A section whose plan request fails or comes back as
// invalid JSON is skipped; the rest of the run continues without it.
func (p *Planner) GeneratePlans(ctx context.Context, root string, themes []book.ThemeSpec) (map[book.SectionKey]*book.SectionPlan, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}

	plansDir := filepath.Join(root, "plans")
	if err := os.MkdirAll(plansDir, 0o755); err != nil {
		return nil, err
	}

	plans := make(map[book.SectionKey]*book.SectionPlan)
	for _, theme := range themes {
		for _, section := range theme.Subsections {
			key := book.SectionKey{Chapter: theme.ChapterTitle, Section: section}
			slug := book.Slugify(theme.ChapterTitle + "-" + section)
			planPath := filepath.Join(plansDir, slug+".json")

			if data, err := os.ReadFile(planPath); err == nil {
				var plan book.SectionPlan
				if err := json.Unmarshal(data, &plan); err != nil {
					logger.Printf("[ERROR] cached plan %s is not valid JSON: %v", planPath, err)
					continue
				}
				logger.Printf("[INFO] using cached plan for section %q", section)
				plans[key] = &plan
				continue
			}

			if p.Client == nil {
				logger.Printf("[WARN] no client; cannot generate plan for %q", section)
				continue
			}

			logger.Printf("[INFO] generating plan for section %q ...", section)
			text, err := p.Client.Complete(ctx, p.Model, BuildPlanJSONPrompt(theme.ChapterTitle, section), planMaxOutputTokens)
			if err != nil {
				logger.Printf("[ERROR] plan request for section %q failed: %v", section, err)
				continue
			}

			var plan book.SectionPlan
			if err := json.Unmarshal([]byte(text), &plan); err != nil {
				logger.Printf("[ERROR] failed to parse JSON plan for section %q: %v", section, err)
				logger.Printf("[ERROR] raw response (first 500 chars): %s", head(text, 500))
				continue
			}

			pretty, err := json.MarshalIndent(&plan, "", "  ")
			if err != nil {
				return nil, err
			}
			if err := os.WriteFile(planPath, pretty, 0o644); err != nil {
				return nil, err
			}
			plans[key] = &plan
			logger.Printf("[OK]   saved plan to %s", planPath)
		}
	}
	return plans, nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
