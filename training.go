package cardex

import (
	"context"
	"time"
)

// ExampleType identifies the synthesis variant a training example was
// produced by.
type ExampleType string

// Example types. One card yields at most one example of each type.
const (
	FullFormatting         ExampleType = "full_formatting"
	PartialFormatting      ExampleType = "partial_formatting"
	ContextAwareFormatting ExampleType = "context_aware_formatting"
)

// Message is one chat turn in a training example.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ExampleMetadata is advisory metadata attached to a training example.
// CardID is a content hash, not a primary key; collisions are acceptable.
type ExampleMetadata struct {
	CardID    string      `json:"cardId"`
	Tag       string      `json:"tag"`
	Source    string      `json:"source"`
	CreatedAt time.Time   `json:"createdAt"`
	Type      ExampleType `json:"type"`
}

// TrainingExample is a structured prompt/response pair used to fine-tune
// a model to reproduce formatting decisions. Immutable once created.
type TrainingExample struct {
	ID       string          `json:"id"`
	Messages []Message       `json:"messages"`
	Metadata ExampleMetadata `json:"metadata"`
}

// Validate returns an error if the example cannot be persisted.
func (e *TrainingExample) Validate() error {
	if len(e.Messages) == 0 {
		return Errorf(EINVALID, "training example messages required")
	}
	if e.Metadata.CardID == "" {
		return Errorf(EINVALID, "training example card ID required")
	}
	return nil
}

// ExampleSynthesizer converts validated cards into training examples.
// Synthesis failures on one card skip that card's examples; the batch
// always completes.
type ExampleSynthesizer interface {
	Synthesize(cards []*Card) []*TrainingExample
}

// TrainingExampleService represents a service for managing persisted
// training examples.
type TrainingExampleService interface {
	// CreateExamples persists a batch of training examples.
	CreateExamples(ctx context.Context, examples []*TrainingExample) error

	// FindExamples retrieves examples matching the filter, newest first.
	FindExamples(ctx context.Context, filter ExampleFilter) ([]*TrainingExample, error)
}

// ExampleFilter represents a filter for FindExamples.
type ExampleFilter struct {
	CardID *string      `json:"cardId"`
	Type   *ExampleType `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CorpusWriter materializes training examples to a line-delimited JSON
// file of {"messages":[...]} objects, metadata stripped, as expected by
// hosted fine-tuning services.
type CorpusWriter interface {
	WriteCorpus(ctx context.Context, path string, examples []*TrainingExample) error
}

// FineTuneJob describes a started fine-tuning job.
type FineTuneJob struct {
	ID     string `json:"id"`
	FileID string `json:"fileId"`
	Model  string `json:"model"`
	Status string `json:"status"`
}

// Uploader uploads a corpus file to a hosted fine-tuning service and
// starts a job.
type Uploader interface {
	Upload(ctx context.Context, path string) (*FineTuneJob, error)
}
