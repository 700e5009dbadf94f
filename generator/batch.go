package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"methods_book/book"
)

const exampleMaxOutputTokens = 8000

// ExampleState tracks one example across batch rounds. Terminal once
// Completed is true.
type ExampleState struct {
	Completed        bool
	IncompleteReason *IncompleteReason
	StatusCode       int // 0 when no response envelope was present
}

// IncompleteReason explains why an example is not complete yet. Reason is
// the provider's own truncation reason when it gave one, otherwise
// "markers_missing"; a result record with no response envelope at all gets
// "no_response" plus the raw error payload.
type IncompleteReason struct {
	Reason string          `json:"reason"`
	Error  json.RawMessage `json:"error,omitempty"`
}

// BatchRunner drives the multi-round batch pipeline: build requests for
// every planned example, submit them as one job, poll, parse, and resubmit
// continuation requests for truncated examples until the round budget runs
// out. Round artifacts live under the project root so a re-run can pick up
// where a previous one stopped.
type BatchRunner struct {
	Client       Client
	Model        string
	MaxRounds    int
	PollInterval time.Duration
	Logger       *log.Logger
	Verbose      bool
}

type exampleMeta struct {
	chapter string
	section string
	index   int
	title   string
	summary string
}

// errBatchAborted marks the fatal job states; it stops further rounds but
// does not discard text accumulated in earlier rounds.
var errBatchAborted = errors.New("batch job did not complete")

func (r *BatchRunner) logf(format string, args ...any) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}

func (r *BatchRunner) debugf(format string, args ...any) {
	if !r.Verbose {
		return
	}
	r.logf("[DEBUG] "+format, args...)
}

// Run executes up to MaxRounds batch rounds for every example in plans and
// returns the finalized (inquiry, solution) pair per example. Examples
// still incomplete after the last round are finalized from whatever text
// they have.
func (r *BatchRunner) Run(ctx context.Context, root string, themes []book.ThemeSpec, plans map[book.SectionKey]*book.SectionPlan) (map[book.ExampleKey]book.ExampleOutput, error) {
	specByID := make(map[string]exampleMeta)
	var remaining []string

	for _, theme := range themes {
		for _, section := range theme.Subsections {
			plan := plans[book.SectionKey{Chapter: theme.ChapterTitle, Section: section}]
			if plan == nil {
				r.logf("[WARN] no plan for section %q, skipping examples", section)
				continue
			}
			for idx, ex := range plan.Examples {
				title := ex.Title
				if title == "" {
					title = fmt.Sprintf("Example %d", idx+1)
				}
				customID := fmt.Sprintf("example::%s::%s::%d", book.Slugify(theme.ChapterTitle), book.Slugify(section), idx)
				specByID[customID] = exampleMeta{
					chapter: theme.ChapterTitle,
					section: section,
					index:   idx,
					title:   title,
					summary: ex.Summary,
				}
				remaining = append(remaining, customID)
			}
		}
	}

	if len(specByID) == 0 {
		r.logf("[INFO] no examples found in plans; skipping batch example generation")
		return map[book.ExampleKey]book.ExampleOutput{}, nil
	}

	maxRounds := r.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	combined := make(map[string]string)
	states := make(map[string]*ExampleState)

	for round := 1; round <= maxRounds; round++ {
		if len(remaining) == 0 {
			r.logf("[INFO] all examples completed before round %d", round)
			break
		}
		r.logf("[INFO] === batch round %d: %d examples to run / parse ===", round, len(remaining))

		requestsPath, resultsPath := roundPaths(root, round)
		if err := r.writeRoundRequests(requestsPath, round, remaining, specByID, combined); err != nil {
			return nil, err
		}

		if _, err := os.Stat(resultsPath); err == nil {
			r.logf("[INFO] found existing results for round %d at %s; reusing them", round, resultsPath)
		} else {
			if r.Client == nil {
				r.logf("[ERROR] no client and no existing results file for round %d", round)
				break
			}
			if err := r.submitAndWait(ctx, round, requestsPath, resultsPath); err != nil {
				if errors.Is(err, errBatchAborted) {
					break
				}
				return nil, err
			}
		}

		var err error
		remaining, err = r.parseRoundResults(resultsPath, round, combined, states)
		if err != nil {
			return nil, err
		}

		if len(remaining) == 0 {
			r.logf("[INFO] all examples completed after round %d", round)
			break
		}
		r.logf("[INFO] after round %d, %d examples are still incomplete; will attempt continuation", round, len(remaining))
	}

	return r.finalize(specByID, combined, states, maxRounds), nil
}

// roundPaths returns where round artifacts live. Round 1 keeps the plain
// names so old runs stay compatible with re-runs.
func roundPaths(root string, round int) (requestsPath, resultsPath string) {
	if round == 1 {
		return filepath.Join(root, "openai_examples_requests.jsonl"),
			filepath.Join(root, "openai_examples_results.jsonl")
	}
	return filepath.Join(root, fmt.Sprintf("openai_examples_requests_round%d.jsonl", round)),
		filepath.Join(root, fmt.Sprintf("openai_examples_results_round%d.jsonl", round))
}

type batchRequest struct {
	CustomID string           `json:"custom_id"`
	Method   string           `json:"method"`
	URL      string           `json:"url"`
	Body     batchRequestBody `json:"body"`
}

type batchRequestBody struct {
	Model           string          `json:"model"`
	Reasoning       reasoningEffort `json:"reasoning"`
	Input           string          `json:"input"`
	MaxOutputTokens int64           `json:"max_output_tokens"`
}

type reasoningEffort struct {
	Effort string `json:"effort"`
}

// writeRoundRequests builds the JSONL request file for this round only.
// Round 1 sends the full task framing; later rounds send continuation
// prompts for examples that already have partial text.
func (r *BatchRunner) writeRoundRequests(requestsPath string, round int, remaining []string, specByID map[string]exampleMeta, combined map[string]string) error {
	f, err := os.Create(requestsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, customID := range remaining {
		meta := specByID[customID]

		var prompt string
		existing := strings.TrimSpace(combined[customID])
		if round == 1 || existing == "" {
			prompt = BuildExampleTripletPrompt(meta.chapter, meta.section, meta.title, meta.summary)
		} else {
			prompt = BuildContinuationPrompt(existing)
		}

		req := batchRequest{
			CustomID: customID,
			Method:   "POST",
			URL:      responsesEndpoint,
			Body: batchRequestBody{
				Model:           r.Model,
				Reasoning:       reasoningEffort{Effort: "medium"},
				Input:           prompt,
				MaxOutputTokens: exampleMaxOutputTokens,
			},
		}
		if err := enc.Encode(req); err != nil {
			return err
		}
	}
	return f.Close()
}

// submitAndWait uploads the round's requests, polls the job to a terminal
// state, and downloads the results file. The fatal provider states map to
// errBatchAborted.
func (r *BatchRunner) submitAndWait(ctx context.Context, round int, requestsPath, resultsPath string) error {
	r.logf("[INFO] uploading batch input file for round %d ...", round)
	batchID, err := r.Client.SubmitBatch(ctx, requestsPath)
	if err != nil {
		return fmt.Errorf("round %d: %w", round, err)
	}
	r.logf("[INFO] [round %d] batch job id: %s", round, batchID)

	interval := r.PollInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	var status BatchStatus
	for {
		status, err = r.Client.BatchStatus(ctx, batchID)
		if err != nil {
			return fmt.Errorf("round %d: poll batch %s: %w", round, batchID, err)
		}
		if status.Total > 0 {
			r.logf("[INFO] [round %d] batch status: %s (%d/%d requests completed)", round, status.Status, status.Completed, status.Total)
		} else {
			r.logf("[INFO] [round %d] batch status: %s", round, status.Status)
		}

		if status.Status == BatchCompleted {
			break
		}
		switch status.Status {
		case BatchFailed, BatchCancelled, BatchExpired:
			r.logf("[ERROR] [round %d] batch job did not complete successfully (status: %s)", round, status.Status)
			return errBatchAborted
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	if status.OutputFileID == "" {
		r.logf("[ERROR] [round %d] no output file id for completed batch", round)
		return errBatchAborted
	}

	r.logf("[INFO] [round %d] downloading batch results (file id: %s) ...", round, status.OutputFileID)
	if err := r.Client.DownloadFile(ctx, status.OutputFileID, resultsPath); err != nil {
		return fmt.Errorf("round %d: download results: %w", round, err)
	}
	r.logf("[INFO] [round %d] results saved to %s", round, resultsPath)
	return nil
}

// parseRoundResults parses one round of batch results, appending new text
// segments to combined and updating per-example state. It returns the ids
// still incomplete after this round.
func (r *BatchRunner) parseRoundResults(resultsPath string, round int, combined map[string]string, states map[string]*ExampleState) ([]string, error) {
	data, err := os.ReadFile(resultsPath)
	if err != nil {
		return nil, err
	}
	r.logf("[INFO] parsing round %d results from %s ...", round, resultsPath)

	var incomplete []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !gjson.Valid(line) {
			r.logf("[WARN] [round %d] skipping malformed result line", round)
			continue
		}
		rec := gjson.Parse(line)
		customID := rec.Get("custom_id").String()
		if customID == "" {
			continue
		}

		resp := rec.Get("response")
		if !resp.Exists() || resp.Type == gjson.Null {
			errPayload := rec.Get("error")
			r.logf("[WARN] [round %d] no response for %s; error=%s", round, customID, errPayload.Raw)
			reason := &IncompleteReason{Reason: "no_response"}
			if errPayload.Exists() && errPayload.Type != gjson.Null {
				reason.Error = json.RawMessage(errPayload.Raw)
			}
			states[customID] = &ExampleState{IncompleteReason: reason}
			incomplete = append(incomplete, customID)
			continue
		}

		statusCode := int(resp.Get("status_code").Int())
		body := resp.Get("body")
		segment := extractOutputText(body)
		r.debugf("[round %d] %s: status_code=%d body.status=%s incomplete_details=%s",
			round, customID, statusCode, body.Get("status").String(), body.Get("incomplete_details").Raw)

		if prev := combined[customID]; prev != "" {
			combined[customID] = strings.TrimSpace(prev + "\n" + segment)
		} else {
			combined[customID] = strings.TrimSpace(segment)
		}

		if hasAllMarkers(combined[customID]) {
			states[customID] = &ExampleState{Completed: true, StatusCode: statusCode}
			continue
		}

		states[customID] = &ExampleState{
			IncompleteReason: incompleteReasonFromBody(body),
			StatusCode:       statusCode,
		}
		incomplete = append(incomplete, customID)
		r.debugf("[round %d] example %s still incomplete (%s)", round, customID, states[customID].IncompleteReason.Reason)
	}
	return incomplete, nil
}

func incompleteReasonFromBody(body gjson.Result) *IncompleteReason {
	details := body.Get("incomplete_details")
	if details.Exists() && details.Type != gjson.Null {
		if reason := details.Get("reason").String(); reason != "" {
			return &IncompleteReason{Reason: reason}
		}
	}
	return &IncompleteReason{Reason: "markers_missing"}
}

// extractOutputText walks body.output[].content[] and concatenates every
// output_text item. The text field may be a bare string or an object with
// a value/content field; anything else is ignored.
func extractOutputText(body gjson.Result) string {
	var chunks []string
	for _, msg := range body.Get("output").Array() {
		for _, item := range msg.Get("content").Array() {
			if item.Get("type").String() != "output_text" {
				continue
			}
			text := item.Get("text")
			var val string
			if text.IsObject() {
				val = text.Get("value").String()
				if val == "" {
					val = text.Get("content").String()
				}
			} else {
				val = text.String()
			}
			if val != "" {
				chunks = append(chunks, val)
			}
		}
	}
	return strings.TrimSpace(strings.Join(chunks, "\n"))
}

// finalize extracts the (inquiry, solution) pair for every example that
// produced any text. An example with no solution markers keeps its entire
// combined text as the solution: partial content beats dropping it.
func (r *BatchRunner) finalize(specByID map[string]exampleMeta, combined map[string]string, states map[string]*ExampleState, maxRounds int) map[book.ExampleKey]book.ExampleOutput {
	outputs := make(map[book.ExampleKey]book.ExampleOutput)

	for customID, meta := range specByID {
		text := strings.TrimSpace(combined[customID])
		if text == "" {
			r.logf("[WARN] no text at all for %s; skipping", customID)
			continue
		}

		if state := states[customID]; state != nil && !state.Completed {
			reason := "unknown"
			if state.IncompleteReason != nil {
				reason = state.IncompleteReason.Reason
			}
			r.logf("[WARN] example %s is still incomplete after %d rounds (reason=%s); using whatever text we have", customID, maxRounds, reason)
		}

		inquiry := ExtractBlock(text, InquiryStartMarker, InquiryEndMarker)
		solution := ExtractBlock(text, SolutionStartMarker, SolutionEndMarker)

		if inquiry == "" && strings.Contains(text, InquiryStartMarker) {
			r.logf("[WARN] could not neatly extract inquiry for %s", customID)
		}
		if solution == "" && strings.Contains(text, SolutionStartMarker) {
			r.logf("[WARN] could not neatly extract solution for %s", customID)
		}
		if solution == "" {
			solution = text
		}

		outputs[book.ExampleKey{Chapter: meta.chapter, Section: meta.section, Index: meta.index}] = book.ExampleOutput{
			Title:    meta.title,
			Inquiry:  inquiry,
			Solution: solution,
		}
	}
	return outputs
}
