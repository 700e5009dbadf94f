package generator

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

const responsesEndpoint = "/v1/responses"

// OpenAIClient implements Client using the official openai-go SDK.
type OpenAIClient struct {
	client openai.Client
}

// NewClientFromConfig builds the one client handle the whole run shares.
// When no API key is configured it returns (nil, nil); callers degrade to
// offline stub behavior instead of failing.
func NewClientFromConfig(cfg Config, logger *log.Logger) (Client, error) {
	if logger == nil {
		logger = log.Default()
	}
	key := cfg.apiKey()
	if key == "" {
		logger.Printf("[INFO] OPENAI_API_KEY not set; skipping OpenAI content generation")
		return nil, nil
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if cfg.LLM != nil && cfg.LLM.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLM.BaseURL))
	}
	return &OpenAIClient{client: openai.NewClient(opts...)}, nil
}

func (o *OpenAIClient) Complete(ctx context.Context, model, prompt string, maxOutputTokens int64) (string, error) {
	resp, err := o.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           shared.ResponsesModel(model),
		Input:           responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt)},
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Reasoning:       shared.ReasoningParam{Effort: shared.ReasoningEffortMedium},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.OutputText()), nil
}

func (o *OpenAIClient) SubmitBatch(ctx context.Context, requestsPath string) (string, error) {
	f, err := os.Open(requestsPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	file, err := o.client.Files.New(ctx, openai.FileNewParams{
		File:    f,
		Purpose: openai.FilePurposeBatch,
	})
	if err != nil {
		return "", fmt.Errorf("upload batch input: %w", err)
	}

	batch, err := o.client.Batches.New(ctx, openai.BatchNewParams{
		InputFileID:      file.ID,
		Endpoint:         openai.BatchNewParamsEndpoint(responsesEndpoint),
		CompletionWindow: openai.BatchNewParamsCompletionWindow24h,
	})
	if err != nil {
		return "", fmt.Errorf("create batch: %w", err)
	}
	return batch.ID, nil
}

func (o *OpenAIClient) BatchStatus(ctx context.Context, batchID string) (BatchStatus, error) {
	job, err := o.client.Batches.Get(ctx, batchID)
	if err != nil {
		return BatchStatus{}, err
	}
	return BatchStatus{
		Status:       string(job.Status),
		OutputFileID: job.OutputFileID,
		Completed:    job.RequestCounts.Completed,
		Total:        job.RequestCounts.Total,
	}, nil
}

func (o *OpenAIClient) DownloadFile(ctx context.Context, fileID, destPath string) error {
	res, err := o.client.Files.Content(ctx, fileID)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, res.Body); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
