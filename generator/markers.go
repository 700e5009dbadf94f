package generator

import "strings"

// Sentinel markers splitting one generated response into its two logical
// blocks. The model is instructed to emit exactly these strings; completion
// detection and final extraction both key off them.
const (
	InquiryStartMarker  = "%%% INQUIRY START %%%"
	InquiryEndMarker    = "%%% INQUIRY END %%%"
	SolutionStartMarker = "%%% SOLUTION START %%%"
	SolutionEndMarker   = "%%% SOLUTION END %%%"
)

// ExtractBlock returns the trimmed substring of full between the start and
// end markers, with neither marker included. Missing either marker yields
// the empty string.
func ExtractBlock(full, start, end string) string {
	i := strings.Index(full, start)
	if i < 0 {
		return ""
	}
	i += len(start)
	j := strings.Index(full[i:], end)
	if j < 0 {
		return ""
	}
	return strings.TrimSpace(full[i : i+j])
}

func hasAllMarkers(text string) bool {
	return strings.Contains(text, InquiryStartMarker) &&
		strings.Contains(text, InquiryEndMarker) &&
		strings.Contains(text, SolutionStartMarker) &&
		strings.Contains(text, SolutionEndMarker)
}
