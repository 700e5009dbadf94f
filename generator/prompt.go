package generator

import (
	"fmt"
	"strings"
)

// Shared style/pedagogy preferences, injected into every planning and
// example prompt.
const preferencesText = `I appreciate inquiry-based learning with good guidance, good hints,
motivated examples, and starting with small cases to learn the techniques
that are commonly used. I like crafting a narrative so one can discover
these topics and form a thorough understanding.

For expository solutions, I want complete and thorough explanations written
for an undergraduate + beginning graduate audience. Use complete
mathematical sentences and avoid excessive use of symbols. Aim for a clear,
Chicago-style mathematical exposition.`

// BuildPlanJSONPrompt asks for a machine-readable section plan: strict JSON
// holding a narrative plus 3-7 example descriptors.
func BuildPlanJSONPrompt(chapterTitle, sectionTitle string) string {
	var b strings.Builder
	b.WriteString("You are helping design a section of a Methods in Applied Mathematics\ntextbook / problem notebook.\n\n")
	fmt.Fprintf(&b, "CHAPTER: %q\nSECTION: %q\n\n", chapterTitle, sectionTitle)
	b.WriteString(preferencesText)
	b.WriteString("\n\n")
	b.WriteString(planJSONInstructions)
	return b.String()
}

const planJSONInstructions = `Produce a JSON object ONLY, with no surrounding explanation or markdown.
The JSON MUST have the following structure:

{
  "section_title": <string>,
  "narrative": <string>,
  "examples": [
    {
      "title": <string>,
      "summary": <string>,
      "teaches": <string>,
      "difficulty_variants": [<string>, ...]
    },
    ...
  ]
}

Requirements:

- "narrative": 1-3 paragraphs (as a single string) describing:
  * what this section is about,
  * why it matters for applied math / PDEs / dynamical systems, etc.,
  * how it connects to other topics (complex analysis, Fourier, ODEs, PDEs).

- "examples": between 3 and 7 entries.
  For each example:
  * "title": a short descriptive title (e.g. "Damped harmonic oscillator").
  * "summary": 2-4 sentences in words about the scenario / model.
  * "teaches": 1-2 sentences about the main technique or concept.
  * "difficulty_variants": 2-4 labels like "easy", "medium", "hard", "extension".

Output ONLY valid JSON; do not include backticks, comments, or any extra text.
`

// BuildExampleTripletPrompt asks for both the inquiry-based version and the
// full solution of one example in a single response, separated by the four
// sentinel markers so the two blocks can be split apart afterwards.
func BuildExampleTripletPrompt(chapterTitle, sectionTitle, exampleTitle, exampleSummary string) string {
	var b strings.Builder
	b.WriteString("You are helping write a Methods in Applied Mathematics textbook /\nproblem notebook.\n\n")
	fmt.Fprintf(&b, "CHAPTER: %q\nSECTION: %q\nEXAMPLE TITLE: %q\n\n", chapterTitle, sectionTitle, exampleTitle)
	fmt.Fprintf(&b, "Informal description of the example:\n%q\n\n", exampleSummary)
	b.WriteString(preferencesText)
	b.WriteString("\n\n")
	b.WriteString(tripletMarkerProtocol)
	b.WriteString(tripletInquiryHeader)
	fmt.Fprintf(&b, "      \\begin{problem}[%s]\n", exampleTitle)
	b.WriteString(tripletInquiryBody)
	b.WriteString(tripletSolutionHeader)
	fmt.Fprintf(&b, "      \\begin{problem}[%s]\n", exampleTitle)
	b.WriteString(tripletSolutionBody)
	fmt.Fprintf(&b, "  * briefly mention how this example illustrates the main ideas of the\n    section %q.\n\n", sectionTitle)
	b.WriteString(tripletFooter)
	return b.String()
}

const tripletMarkerProtocol = `Produce TWO pieces of LaTeX output, clearly separated by markers:

    %%% INQUIRY START %%%
    ... inquiry-based LaTeX problem ...
    %%% INQUIRY END %%%
    %%% SOLUTION START %%%
    ... full problem + solution LaTeX ...
    %%% SOLUTION END %%%

`

const tripletInquiryHeader = `------------------------------------------------------------
PART 1: Inquiry-based version (between INQUIRY markers)
------------------------------------------------------------

Requirements:

- Output a single LaTeX environment:

`

const tripletInquiryBody = `      % Short narrative of the physical / geometric / modeling setup.

      (a) First exploratory question...

      (b) Question that nudges the student toward the right technique...

      (c) A question that has them compute or prove a key intermediate fact...

      (d) Question that assembles the pieces into the final conclusion...

      (e) One or two "what if" / extension questions.
      \end{problem}

- Start with 2-5 sentences of motivation inside the problem.
- Include hints for delicate steps, either as comments "% Hint: ..."
  or as "Hint: ..." after the question.
- DO NOT include a \begin{solution} here.

`

const tripletSolutionHeader = `------------------------------------------------------------
PART 2: Full solution version (between SOLUTION markers)
------------------------------------------------------------

Requirements:

- Output exactly:

`

const tripletSolutionBody = `      ... concise, self-contained statement of the problem ...
      \end{problem}

      \begin{solution}
      ... full expository solution ...
      \end{solution}

- The problem statement should be shorter and exam-style, but for the
  same mathematical task as in the inquiry version.

- The solution should:
  * be written in complete sentences, with a clear narrative thread,
  * justify key steps (but no need to expand trivial algebra),
  * point out the central ideas (e.g. phase plane, eigenvalues, resonance,
    energy, orthogonality, Green's functions, etc. as appropriate),
`

const tripletFooter = `IMPORTANT:
- Do NOT wrap the output in \documentclass or \begin{document}.
- Do NOT include the markers themselves inside LaTeX comments.
- Output only plain text with the markers and LaTeX content.
`

// BuildContinuationPrompt resumes a truncated example: it shows everything
// generated so far and asks for only the missing trailing content, through
// the closing solution marker.
func BuildContinuationPrompt(existingText string) string {
	var b strings.Builder
	b.WriteString(continuationHeader)
	b.WriteString("--- BEGIN EXISTING CONTENT ---\n")
	b.WriteString(existingText)
	b.WriteString("\n--- END EXISTING CONTENT ---\n\n")
	b.WriteString(continuationFooter)
	return b.String()
}

const continuationHeader = `You previously began generating a LaTeX problem with this marker protocol:

%%% INQUIRY START %%%
(inquiry-based LaTeX problem & hints)
%%% INQUIRY END %%%
%%% SOLUTION START %%%
(full worked solution)
%%% SOLUTION END %%%

The following is the content generated so far. It may already include the
entire INQUIRY block and the beginning of the SOLUTION block, but it was
cut off before the solution finished (or before the closing marker).

`

const continuationFooter = `Your task:
- Continue the LaTeX *from exactly where it was cut off*.
- Do NOT repeat any sentences already present.
- Do NOT regenerate the INQUIRY block if it is already present.
- Focus on FINISHING the solution so that the final combined text will
  contain the closing marker:

  %%% SOLUTION END %%%

Output ONLY the new LaTeX content that should be appended after the
existing text, nothing else.
`

// BuildFixPrompt asks for a minimal local repair of one faulty snippet.
// The task framing and the numbered snippet travel in one input string.
func BuildFixPrompt(fileRel string, errorLine int, numberedSnippet string) string {
	var b strings.Builder
	b.WriteString(fixSystemText)
	b.WriteString("\n")
	fmt.Fprintf(&b, "The following LaTeX snippet is from `%s` around line %d.\n\n", fileRel, errorLine)
	b.WriteString("It has one or more LaTeX syntax errors (e.g. \"Bad math environment delimiter\",\n\"Missing $ inserted\", etc.).\n\n")
	b.WriteString("Here is the snippet WITH line numbers (do not include the numbers in your output):\n\n")
	b.WriteString("```latex\n")
	b.WriteString(numberedSnippet)
	b.WriteString("\n```\n\n")
	b.WriteString("Please return the corrected snippet ONLY, without line numbers and without commentary.\n")
	return b.String()
}

const fixSystemText = `You are an expert LaTeX editor for a graduate-level applied mathematics textbook.

You receive a short excerpt from a .tex file, with line numbers.
Your tasks:

- Find and fix LaTeX syntax errors: missing $, unclosed environments, bad math delimiters,
  mismatched \begin/\end, stray braces, etc.
- Preserve the mathematical content and notation.
- Make MINIMAL local edits so the snippet would compile.
- Do NOT change labels \label{...} or references \eqref{...}.
- Do NOT reorder or delete large blocks of text unless necessary to fix LaTeX syntax.

Return ONLY the corrected snippet, without any line numbers, without commentary, so it can be pasted back into the file.
`
