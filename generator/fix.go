package generator

import (
	"context"
	"strings"

	"methods_book/texlog"
)

const fixMaxOutputTokens = 4000

// NewRegionFixer returns a texlog.Fixer backed by the generation client.
// The fixer error path matters: the patcher skips a region whose fix
// request failed and leaves its lines alone.
func NewRegionFixer(ctx context.Context, client Client, model string) texlog.Fixer {
	return func(region texlog.Region) (string, error) {
		prompt := BuildFixPrompt(region.File, region.ErrorLine, region.SnippetNumbered)
		out, err := client.Complete(ctx, model, prompt, fixMaxOutputTokens)
		if err != nil {
			return "", err
		}
		return stripCodeFence(out), nil
	}
}

// stripCodeFence unwraps a ```latex ... ``` fence when the model adds one
// despite being told not to.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return text
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
