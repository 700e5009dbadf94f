package texlog

import (
	"log"
	"os/exec"
)

// RunLaTeX runs pdflatex non-interactively on main.tex under root and
// returns the combined compiler output. A nonzero exit is expected when the
// document has errors; the log text is still what the scanner wants, so it
// is only an error when no output was produced at all.
func RunLaTeX(root string, logger *log.Logger) (string, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("[INFO] running pdflatex in %s ...", root)
	cmd := exec.Command("pdflatex", "-interaction=nonstopmode", "main.tex")
	cmd.Dir = root
	out, err := cmd.CombinedOutput()
	if err != nil && len(out) == 0 {
		return "", err
	}
	return string(out), nil
}
