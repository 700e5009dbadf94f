package generator

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MockClient is an offline stand-in that never talks to the network: handy
// for local debugging of the pipeline and for tests. Complete answers plan
// prompts with a tiny valid plan and everything else with a marker-complete
// snippet; the batch methods simulate an instantly completed job whose
// results echo one stub answer per request.
type MockClient struct {
	requestsPath string
}

func (m *MockClient) Complete(_ context.Context, _, prompt string, _ int64) (string, error) {
	if strings.Contains(prompt, "Produce a JSON object ONLY") {
		return mockPlanJSON, nil
	}
	return mockTripletText, nil
}

func (m *MockClient) SubmitBatch(_ context.Context, requestsPath string) (string, error) {
	m.requestsPath = requestsPath
	return "batch_mock", nil
}

func (m *MockClient) BatchStatus(context.Context, string) (BatchStatus, error) {
	return BatchStatus{Status: BatchCompleted, OutputFileID: "file_mock"}, nil
}

// DownloadFile synthesizes a results file from the submitted requests.
func (m *MockClient) DownloadFile(_ context.Context, _, destPath string) error {
	in, err := os.Open(m.requestsPath)
	if err != nil {
		return fmt.Errorf("mock client: no submitted batch: %w", err)
	}
	defer in.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var req batchRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			return err
		}
		rec := map[string]any{
			"custom_id": req.CustomID,
			"response": map[string]any{
				"status_code": 200,
				"body": map[string]any{
					"status": "completed",
					"output": []any{
						map[string]any{
							"type": "message",
							"content": []any{
								map[string]any{"type": "output_text", "text": mockTripletText},
							},
						},
					},
				},
			},
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return out.Close()
}

const mockPlanJSON = `{
  "section_title": "Mock Section",
  "narrative": "A placeholder narrative produced by the mock client.",
  "examples": [
    {
      "title": "Mock Example",
      "summary": "A placeholder example produced by the mock client.",
      "teaches": "Nothing; it exercises the pipeline.",
      "difficulty_variants": ["easy", "medium"]
    }
  ]
}`

const mockTripletText = `%%% INQUIRY START %%%
\begin{problem}[Mock Example]
% Placeholder inquiry produced by the mock client.
(a) What would the real model have asked here?
\end{problem}
%%% INQUIRY END %%%
%%% SOLUTION START %%%
\begin{problem}[Mock Example]
Placeholder problem statement.
\end{problem}
\begin{solution}
Placeholder solution body.
\end{solution}
%%% SOLUTION END %%%`
