package texlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Fixer turns one faulty region into replacement text for its line range.
// Production wires this to a model call; tests pass a pure function. An
// error skips that region and leaves its lines untouched.
type Fixer func(Region) (string, error)

// ApplyFixesToFiles replaces each region's [StartLine, EndLine] range with
// its fixer output. Regions are grouped by file; each file is read once and
// written back once, so one region's edit cannot shift the line numbers
// another region was computed against. Lines outside every region's range
// stay byte-identical.
//
// Overlapping regions in the same file are allowed: a region whose range
// would reach into lines already produced by an earlier fix is clamped past
// them, so both fixes survive into the final file.
func ApplyFixesToFiles(regions []Region, fixer Fixer, projectRoot string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	byFile := make(map[string][]Region)
	var fileOrder []string
	for _, r := range regions {
		if _, ok := byFile[r.File]; !ok {
			fileOrder = append(fileOrder, r.File)
		}
		byFile[r.File] = append(byFile[r.File], r)
	}

	for _, fileRel := range fileOrder {
		path := filepath.Join(projectRoot, fileRel)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Printf("[WARN] cannot read %s, skipping its fixes: %v", fileRel, err)
			continue
		}
		content := string(data)
		trailingNewline := strings.HasSuffix(content, "\n")
		lines := strings.Split(content, "\n")
		if trailingNewline {
			lines = lines[:len(lines)-1]
		}

		regs := byFile[fileRel]
		sort.SliceStable(regs, func(i, j int) bool {
			if regs[i].StartLine != regs[j].StartLine {
				return regs[i].StartLine < regs[j].StartLine
			}
			return regs[i].EndLine < regs[j].EndLine
		})

		// delta tracks how earlier replacements shifted the file;
		// written is the last post-edit line covered by a previous fix.
		delta := 0
		written := 0
		for _, reg := range regs {
			fixed, err := fixer(reg)
			if err != nil {
				logger.Printf("[WARN] fixer failed for %s around line %d: %v", fileRel, reg.ErrorLine, err)
				continue
			}
			fixLines := splitFixedText(fixed)

			start := reg.StartLine + delta
			end := reg.EndLine + delta
			if start <= written {
				start = written + 1
			}
			if start > len(lines)+1 {
				start = len(lines) + 1
			}
			if end > len(lines) {
				end = len(lines)
			}
			if end < start-1 {
				end = start - 1
			}

			replaced := end - start + 1
			updated := make([]string, 0, len(lines)-replaced+len(fixLines))
			updated = append(updated, lines[:start-1]...)
			updated = append(updated, fixLines...)
			updated = append(updated, lines[end:]...)
			lines = updated

			delta += len(fixLines) - replaced
			written = start - 1 + len(fixLines)
			logger.Printf("[INFO] patched %s lines %d-%d", fileRel, reg.StartLine, reg.EndLine)
		}

		out := strings.Join(lines, "\n")
		if trailingNewline {
			out += "\n"
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", fileRel, err)
		}
	}
	return nil
}

func splitFixedText(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
