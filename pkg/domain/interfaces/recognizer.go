package interfaces

import (
	"context"

	"github.com/mekorot/linker/pkg/domain/model"
)

// Recognizer runs named-entity inference over texts. Implementations live in
// pkg/infra/recognizer and are selected by architecture at startup.
type Recognizer interface {
	// Predict returns the labeled spans found in a single text
	Predict(ctx context.Context, text string) ([]model.Span, error)

	// BulkPredict returns spans for each text, processing the inputs in
	// batches of at most batchSize. The outer result slice is index-aligned
	// with texts.
	BulkPredict(ctx context.Context, texts []string, batchSize int) ([][]model.Span, error)
}
