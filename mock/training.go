package mock

import (
	"context"

	"github.com/evidlab/cardex"
)

var _ cardex.ExampleSynthesizer = (*ExampleSynthesizer)(nil)

// ExampleSynthesizer is a mock implementation of cardex.ExampleSynthesizer.
type ExampleSynthesizer struct {
	SynthesizeFn func(cards []*cardex.Card) []*cardex.TrainingExample
}

func (s *ExampleSynthesizer) Synthesize(cards []*cardex.Card) []*cardex.TrainingExample {
	return s.SynthesizeFn(cards)
}

var _ cardex.TrainingExampleService = (*TrainingExampleService)(nil)

// TrainingExampleService is a mock implementation of cardex.TrainingExampleService.
type TrainingExampleService struct {
	CreateExamplesFn func(ctx context.Context, examples []*cardex.TrainingExample) error
	FindExamplesFn   func(ctx context.Context, filter cardex.ExampleFilter) ([]*cardex.TrainingExample, error)
}

func (s *TrainingExampleService) CreateExamples(ctx context.Context, examples []*cardex.TrainingExample) error {
	return s.CreateExamplesFn(ctx, examples)
}

func (s *TrainingExampleService) FindExamples(ctx context.Context, filter cardex.ExampleFilter) ([]*cardex.TrainingExample, error) {
	return s.FindExamplesFn(ctx, filter)
}

var _ cardex.CorpusWriter = (*CorpusWriter)(nil)

// CorpusWriter is a mock implementation of cardex.CorpusWriter.
type CorpusWriter struct {
	WriteCorpusFn func(ctx context.Context, path string, examples []*cardex.TrainingExample) error
}

func (w *CorpusWriter) WriteCorpus(ctx context.Context, path string, examples []*cardex.TrainingExample) error {
	return w.WriteCorpusFn(ctx, path, examples)
}

var _ cardex.Uploader = (*Uploader)(nil)

// Uploader is a mock implementation of cardex.Uploader.
type Uploader struct {
	UploadFn func(ctx context.Context, path string) (*cardex.FineTuneJob, error)
}

func (u *Uploader) Upload(ctx context.Context, path string) (*cardex.FineTuneJob, error) {
	return u.UploadFn(ctx, path)
}
