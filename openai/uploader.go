// Package openai uploads training corpora to the OpenAI fine-tuning API.
package openai

import (
	"context"
	"path/filepath"
	"time"

	"github.com/evidlab/cardex"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// DefaultModel is the base model fine-tuning jobs start from.
const DefaultModel = "gpt-4o-mini-2024-07-18"

// Ensure Uploader implements cardex.Uploader at compile time.
var _ cardex.Uploader = (*Uploader)(nil)

// Uploader uploads a JSONL corpus file and starts a fine-tuning job.
// API calls are rate limited and job creation retries with backoff,
// since the Files API can briefly report a fresh upload as unprocessed.
type Uploader struct {
	client  *openai.Client
	limiter *rate.Limiter
	model   string
	delays  []time.Duration
}

// NewUploader creates an Uploader for the given API key and base model.
// An empty model selects DefaultModel.
func NewUploader(apiKey, model string) (*Uploader, error) {
	if apiKey == "" {
		return nil, cardex.Errorf(cardex.EINVALID, "OpenAI API key required")
	}
	return newUploader(openai.DefaultConfig(apiKey), model), nil
}

// NewUploaderWithBaseURL is like NewUploader with a custom API endpoint.
// Used by tests to point at a stub server.
func NewUploaderWithBaseURL(apiKey, model, baseURL string) (*Uploader, error) {
	if apiKey == "" {
		return nil, cardex.Errorf(cardex.EINVALID, "OpenAI API key required")
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return newUploader(config, model), nil
}

func newUploader(config openai.ClientConfig, model string) *Uploader {
	if model == "" {
		model = DefaultModel
	}
	return &Uploader{
		client:  openai.NewClientWithConfig(config),
		limiter: rate.NewLimiter(rate.Limit(1), 4),
		model:   model,
		delays:  []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
	}
}

// SetRetryDelays overrides the backoff schedule. Used by tests.
func (u *Uploader) SetRetryDelays(delays []time.Duration) {
	u.delays = delays
}

// Upload uploads the corpus file at path and starts a fine-tuning job,
// returning the job handle.
func (u *Uploader) Upload(ctx context.Context, path string) (*cardex.FineTuneJob, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	file, err := u.client.CreateFile(ctx, openai.FileRequest{
		FileName: filepath.Base(path),
		FilePath: path,
		Purpose:  "fine-tune",
	})
	if err != nil {
		return nil, cardex.Errorf(cardex.EINTERNAL, "file upload failed: %v", err)
	}

	job, err := u.createJobWithRetry(ctx, file.ID)
	if err != nil {
		return nil, err
	}

	return &cardex.FineTuneJob{
		ID:     job.ID,
		FileID: file.ID,
		Model:  u.model,
		Status: job.Status,
	}, nil
}

// createJobWithRetry attempts job creation with bounded backoff: one
// initial attempt plus one retry per configured delay.
func (u *Uploader) createJobWithRetry(ctx context.Context, fileID string) (openai.FineTuningJob, error) {
	maxAttempts := len(u.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := u.limiter.Wait(ctx); err != nil {
			return openai.FineTuningJob{}, err
		}

		job, err := u.client.CreateFineTuningJob(ctx, openai.FineTuningJobRequest{
			TrainingFile: fileID,
			Model:        u.model,
		})
		if err == nil {
			return job, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return openai.FineTuningJob{}, ctx.Err()
		case <-time.After(u.delays[attempt]):
		}
	}

	return openai.FineTuningJob{}, cardex.Errorf(cardex.EINTERNAL, "fine-tuning job creation failed: %v", lastErr)
}
