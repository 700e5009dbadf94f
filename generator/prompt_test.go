package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPlanJSONPrompt(t *testing.T) {
	p := BuildPlanJSONPrompt("Fourier Analysis", "Gibbs Phenomenon")
	assert.Contains(t, p, `CHAPTER: "Fourier Analysis"`)
	assert.Contains(t, p, `SECTION: "Gibbs Phenomenon"`)
	assert.Contains(t, p, "Produce a JSON object ONLY")
	assert.Contains(t, p, `"difficulty_variants"`)
}

func TestBuildExampleTripletPrompt(t *testing.T) {
	p := BuildExampleTripletPrompt("Chapter", "Section", "Damped oscillator", "A mass on a spring.")
	assert.Contains(t, p, InquiryStartMarker)
	assert.Contains(t, p, InquiryEndMarker)
	assert.Contains(t, p, SolutionStartMarker)
	assert.Contains(t, p, SolutionEndMarker)
	assert.Contains(t, p, `\begin{problem}[Damped oscillator]`)
	assert.Contains(t, p, "A mass on a spring.")
}

func TestBuildContinuationPrompt(t *testing.T) {
	p := BuildContinuationPrompt("partial inquiry text")
	assert.Contains(t, p, "--- BEGIN EXISTING CONTENT ---")
	assert.Contains(t, p, "partial inquiry text")
	assert.Contains(t, p, SolutionEndMarker)
	assert.Contains(t, p, "Do NOT repeat any sentences already present.")
}

func TestBuildFixPrompt(t *testing.T) {
	p := BuildFixPrompt("themes/ode.tex", 42, "   42  \\bad{line}")
	assert.Contains(t, p, "`themes/ode.tex` around line 42")
	assert.Contains(t, p, "   42  \\bad{line}")
	assert.Contains(t, p, "corrected snippet ONLY")
}
