package texlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Errors we care about (add more patterns as they show up in practice).
var errorRe = regexp.MustCompile(strings.Join([]string{
	`Missing \$ inserted\.`,
	`Bad math environment delimiter\.`,
	`\\begin\{aligned\} allowed only in math mode\.`,
	`Undefined control sequence\.`,
}, "|"))

var (
	sourceLineRe = regexp.MustCompile(`^l\.(\d+)\s`)
	fileOpenRe   = regexp.MustCompile(`\((\./(?:themes|exams)/[^)]+\.tex)`)
)

// How far the scanner looks around an error message: forward for the
// l.<num> source line, backward for the file-open marker.
const (
	sourceLineLookahead = 5
	fileMarkerLookback  = 20
)

type rawError struct {
	line         int
	contextChunk string
}

// parseErrors collects errors as small chunks: the "!" message line, the
// following "l.<num> <source>" line, and a bit of context above so the
// originating file can be guessed. Errors with no l.<num> line within the
// lookahead window are dropped.
func parseErrors(logText string) []rawError {
	lines := strings.Split(logText, "\n")
	var results []rawError

	for i, line := range lines {
		if !strings.HasPrefix(line, "!") || !errorRe.MatchString(line) {
			continue
		}
		for j := i + 1; j < min(i+1+sourceLineLookahead, len(lines)); j++ {
			m := sourceLineRe.FindStringSubmatch(lines[j])
			if m == nil {
				continue
			}
			lineNo, _ := strconv.Atoi(m[1])
			contextStart := max(0, i-fileMarkerLookback)
			results = append(results, rawError{
				line:         lineNo,
				contextChunk: strings.Join(lines[contextStart:j+1], "\n"),
			})
			break
		}
	}
	return results
}

// guessFile looks for "(./themes/xxx.tex" or "(./exams/yyy.tex" in the
// context chunk and takes the last occurrence (closest to the error).
// With no marker at all, the error is attributed to the main document.
func guessFile(contextChunk string) string {
	matches := fileOpenRe.FindAllStringSubmatch(contextChunk, -1)
	if len(matches) > 0 {
		return strings.TrimPrefix(matches[len(matches)-1][1], "./")
	}
	return "main.tex"
}

// CollectProblemRegions scans build-tool diagnostic text for the known error
// patterns and resolves each one to a context window in its source file.
// Duplicate (file, line) hits are dropped, as are errors pointing at files
// that no longer exist on disk.
func CollectProblemRegions(logText, projectRoot string, contextLines int, logger *log.Logger) []Region {
	if logger == nil {
		logger = log.Default()
	}

	type location struct {
		file string
		line int
	}
	seen := make(map[location]bool)
	var regions []Region

	for _, err := range parseErrors(logText) {
		fileRel := guessFile(err.contextChunk)
		loc := location{file: fileRel, line: err.line}
		if seen[loc] {
			continue
		}
		seen[loc] = true

		data, readErr := os.ReadFile(filepath.Join(projectRoot, fileRel))
		if readErr != nil {
			logger.Printf("[WARN] file %s not found, skipping error at line %d", fileRel, err.line)
			continue
		}
		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

		start := max(1, err.line-contextLines)
		end := min(len(lines), err.line+contextLines)
		if end < start {
			continue
		}

		raw := append([]string(nil), lines[start-1:end]...)
		var numbered strings.Builder
		for i, line := range raw {
			if i > 0 {
				numbered.WriteByte('\n')
			}
			fmt.Fprintf(&numbered, "%5d  %s", start+i, line)
		}

		regions = append(regions, Region{
			File:            fileRel,
			ErrorLine:       err.line,
			StartLine:       start,
			EndLine:         end,
			SnippetRaw:      raw,
			SnippetNumbered: numbered.String(),
		})
	}
	return regions
}
