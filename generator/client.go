package generator

import "context"

// Client abstracts the generation service so the pipeline can run against
// OpenAI, a mock, or nothing at all. A nil Client means "no API key is
// configured": plan generation is skipped and batch rounds only reuse
// results already on disk instead of submitting new jobs.
type Client interface {
	// Complete issues one synchronous generation request and returns the
	// concatenated output text.
	Complete(ctx context.Context, model, prompt string, maxOutputTokens int64) (string, error)
	// SubmitBatch uploads a line-delimited JSON request file and starts a
	// batch job against the responses endpoint, returning the job id.
	SubmitBatch(ctx context.Context, requestsPath string) (string, error)
	// BatchStatus reports the current state of a batch job.
	BatchStatus(ctx context.Context, batchID string) (BatchStatus, error)
	// DownloadFile streams a service-side file to destPath.
	DownloadFile(ctx context.Context, fileID, destPath string) error
}

// BatchStatus mirrors the fields of the provider's batch object that the
// poll loop needs.
type BatchStatus struct {
	Status       string
	OutputFileID string
	Completed    int64
	Total        int64
}

// Batch job states surfaced by the provider. Anything in the failed set
// aborts the round; everything else means keep polling.
const (
	BatchCompleted = "completed"
	BatchFailed    = "failed"
	BatchCancelled = "cancelled"
	BatchExpired   = "expired"
)
