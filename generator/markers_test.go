package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const markerSample = `preamble noise
%%% INQUIRY START %%%
\begin{problem}[Demo]
(a) Ask something.
\end{problem}
%%% INQUIRY END %%%
%%% SOLUTION START %%%
\begin{problem}[Demo]
Statement.
\end{problem}
\begin{solution}
Answer.
\end{solution}
%%% SOLUTION END %%%
trailing noise`

func TestExtractBlock(t *testing.T) {
	inquiry := ExtractBlock(markerSample, InquiryStartMarker, InquiryEndMarker)
	assert.Contains(t, inquiry, "(a) Ask something.")
	assert.NotContains(t, inquiry, "INQUIRY")
	assert.NotContains(t, inquiry, "SOLUTION")

	solution := ExtractBlock(markerSample, SolutionStartMarker, SolutionEndMarker)
	assert.Contains(t, solution, `\begin{solution}`)
	assert.NotContains(t, solution, "%%%")
	assert.NotContains(t, solution, "trailing noise")
}

func TestExtractBlockMissingMarkers(t *testing.T) {
	assert.Equal(t, "", ExtractBlock("no markers here", InquiryStartMarker, InquiryEndMarker))

	truncated := "%%% SOLUTION START %%%\nsome partial text"
	assert.Equal(t, "", ExtractBlock(truncated, SolutionStartMarker, SolutionEndMarker))
}

func TestHasAllMarkers(t *testing.T) {
	assert.True(t, hasAllMarkers(markerSample))
	assert.False(t, hasAllMarkers(markerSample[:len(markerSample)-40]))
	assert.False(t, hasAllMarkers(""))
}
