package recognizer

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/mekorot/linker/pkg/domain/interfaces"
	"github.com/mekorot/linker/pkg/domain/model"
)

//go:embed prompts/entity_extraction.md
var extractionSystemPrompt string

// llmExtraction is the JSON shape the model is instructed to produce.
// Offsets from generative models are unreliable, so the prompt asks for
// surface forms and we locate them in the text ourselves.
type llmExtraction struct {
	Entities []llmEntity `json:"entities"`
}

type llmEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type llmRecognizer struct {
	llmClient gollem.LLMClient
}

// NewLLM creates a Recognizer that extracts entities with a generative model
func NewLLM(llmClient gollem.LLMClient) (interfaces.Recognizer, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &llmRecognizer{llmClient: llmClient}, nil
}

// Predict extracts entities from a single text
func (r *llmRecognizer) Predict(ctx context.Context, text string) ([]model.Span, error) {
	logger := ctxlog.From(ctx)

	session, err := r.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionSystemPrompt(extractionSystemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(text))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate LLM content")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("no response from LLM")
	}

	var extraction llmExtraction
	if err := json.Unmarshal([]byte(resp.Texts[0]), &extraction); err != nil {
		logger.Error("Failed to parse LLM response", "error", err, "response", resp.Texts[0])
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	return locateEntities(text, extraction.Entities), nil
}

// BulkPredict extracts entities from each text. Calls are sequential; batch
// size only bounds how much is in flight per request cycle.
func (r *llmRecognizer) BulkPredict(ctx context.Context, texts []string, batchSize int) ([][]model.Span, error) {
	results := make([][]model.Span, len(texts))
	for i, text := range texts {
		spans, err := r.Predict(ctx, text)
		if err != nil {
			return nil, goerr.Wrap(err, "bulk LLM prediction failed", goerr.V("index", i))
		}
		results[i] = spans
	}
	return results, nil
}

// locateEntities maps surface forms reported by the model back to rune
// offsets in the text. Each reported entity consumes its first occurrence
// after the previous match, so repeated surface forms map to successive
// positions. Surface forms absent from the text are dropped.
func locateEntities(text string, entities []llmEntity) []model.Span {
	doc := model.NewDoc(text)
	searchFrom := map[string]int{}

	var spans []model.Span
	for _, entity := range entities {
		if entity.Text == "" {
			continue
		}

		from := searchFrom[entity.Text]
		rel := strings.Index(text[from:], entity.Text)
		if rel < 0 {
			continue
		}
		abs := from + rel
		searchFrom[entity.Text] = abs + len(entity.Text)

		start := utf8.RuneCountInString(text[:abs])
		end := start + utf8.RuneCountInString(entity.Text)
		spans = append(spans, model.NewSpan(doc, start, end, entity.Label))
	}
	return spans
}
