package book

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// WriteStubThemes writes placeholder chapter files when content generation
// is disabled. Stubs are always overwritten with fresh stub content.
func WriteStubThemes(root string, themes []ThemeSpec, logger *log.Logger) error {
	themesDir := filepath.Join(root, "themes")
	if err := os.MkdirAll(themesDir, 0o755); err != nil {
		return err
	}
	for _, theme := range themes {
		path := filepath.Join(themesDir, theme.Filename)
		var b strings.Builder
		fmt.Fprintf(&b, "\\chapter{%s}\n\n", theme.ChapterTitle)
		for _, title := range theme.Subsections {
			fmt.Fprintf(&b, "\\section{%s}\n", title)
			b.WriteString("% TODO: design a plan, inquiry-based examples, and full solutions for this topic.\n\n")
		}
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return err
		}
		logger.Printf("[OK]   wrote %s", path)
	}
	return nil
}

// AssembleThemes serializes section plans and generated example pairs into
// themes/*.tex, one file per chapter, overwriting previous content. Sections
// and examples keep their declaration order; anything never produced gets a
// placeholder comment so the chapter still compiles.
func AssembleThemes(root string, themes []ThemeSpec, plans map[SectionKey]*SectionPlan, outputs map[ExampleKey]ExampleOutput, logger *log.Logger) error {
	themesDir := filepath.Join(root, "themes")
	if err := os.MkdirAll(themesDir, 0o755); err != nil {
		return err
	}

	for _, theme := range themes {
		path := filepath.Join(themesDir, theme.Filename)
		if _, err := os.Stat(path); err == nil {
			logger.Printf("[INFO] overwriting chapter file %s with generated content", path)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "\\chapter{%s}\n\n", theme.ChapterTitle)

		for _, section := range theme.Subsections {
			fmt.Fprintf(&b, "\\section{%s}\n", section)

			plan := plans[SectionKey{Chapter: theme.ChapterTitle, Section: section}]
			if plan == nil {
				b.WriteString("% TODO: no plan generated for this section yet.\n\n")
				continue
			}

			if narrative := strings.TrimSpace(plan.Narrative); narrative != "" {
				b.WriteString("% --- Narrative plan (auto-generated) ---\n")
				for _, ln := range strings.Split(narrative, "\n") {
					if strings.TrimSpace(ln) != "" {
						fmt.Fprintf(&b, "%% %s\n", ln)
					} else {
						b.WriteString("%\n")
					}
				}
				b.WriteString("\n")
			}

			if len(plan.Examples) == 0 {
				b.WriteString("% TODO: design examples for this section and add them here.\n\n")
				continue
			}

			for idx, ex := range plan.Examples {
				out, ok := outputs[ExampleKey{Chapter: theme.ChapterTitle, Section: section, Index: idx}]
				if !ok {
					fmt.Fprintf(&b, "%% TODO: no generated content yet for example %d ('%s').\n\n", idx+1, exampleTitle(ex, idx))
					continue
				}

				inquiry := strings.TrimSpace(out.Inquiry)
				solution := strings.TrimSpace(out.Solution)

				if inquiry != "" {
					fmt.Fprintf(&b, "%% ===== Example %d: %s (inquiry-based) =====\n", idx+1, out.Title)
					b.WriteString(inquiry + "\n\n")
				}
				fmt.Fprintf(&b, "%% ===== Example %d: %s (full solution) =====\n", idx+1, out.Title)
				b.WriteString(solution + "\n\n")
			}
		}

		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return err
		}
		logger.Printf("[OK]   wrote %s", path)
	}
	return nil
}

func exampleTitle(ex PlanExample, idx int) string {
	if ex.Title != "" {
		return ex.Title
	}
	return fmt.Sprintf("Example %d", idx+1)
}
