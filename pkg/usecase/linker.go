package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mekorot/linker/pkg/domain/interfaces"
	"github.com/mekorot/linker/pkg/domain/model"
)

// bulkBatchSize caps how many texts are sent to a recognizer per batch
const bulkBatchSize = 150

type linkerUseCase struct {
	models map[model.ModelType]map[string]interfaces.Recognizer
}

// NewLinker creates a LinkerUseCase over a registry of recognizers keyed by
// model type and language
func NewLinker(models map[model.ModelType]map[string]interfaces.Recognizer) interfaces.LinkerUseCase {
	return &linkerUseCase{
		models: models,
	}
}

// recognizers resolves the named-entity and reference-part models for a language
func (uc *linkerUseCase) recognizers(lang string) (ner, refPart interfaces.Recognizer, err error) {
	ner = uc.models[model.ModelTypeNamedEntity][lang]
	if ner == nil {
		return nil, nil, goerr.New("no named_entity model for language", goerr.V("lang", lang))
	}
	refPart = uc.models[model.ModelTypeRefPart][lang]
	if refPart == nil {
		return nil, nil, goerr.New("no ref_part model for language", goerr.V("lang", lang))
	}
	return ner, refPart, nil
}

// RecognizeEntities analyzes a single text with the models registered for lang
func (uc *linkerUseCase) RecognizeEntities(ctx context.Context, text, lang string, withSpanText bool) (*model.EntityList, error) {
	logger := ctxlog.From(ctx)
	requestID := uuid.NewString()

	ner, refPart, err := uc.recognizers(lang)
	if err != nil {
		return nil, err
	}

	logger.Info("Recognizing entities",
		"request_id", requestID,
		"lang", lang,
		"text_len", len(text),
	)

	spans, err := ner.Predict(ctx, text)
	if err != nil {
		return nil, goerr.Wrap(err, "named entity prediction failed", goerr.V("request_id", requestID))
	}

	citations, others := partitionSpans(spans)

	refParts, err := predictRefParts(ctx, refPart, citations)
	if err != nil {
		return nil, goerr.Wrap(err, "reference part prediction failed", goerr.V("request_id", requestID))
	}

	logger.Debug("Recognition complete",
		"request_id", requestID,
		"citation_count", len(citations),
		"other_count", len(others),
	)

	return serializeEntities(citations, refParts, others, withSpanText), nil
}

// BulkRecognizeEntities analyzes multiple texts in one pass. Citation spans
// from all texts are flattened into a single reference-part batch and mapped
// back by input index afterwards.
func (uc *linkerUseCase) BulkRecognizeEntities(ctx context.Context, texts []string, lang string, withSpanText bool) (*model.BulkEntityList, error) {
	logger := ctxlog.From(ctx)
	requestID := uuid.NewString()

	ner, refPart, err := uc.recognizers(lang)
	if err != nil {
		return nil, err
	}

	logger.Info("Recognizing entities in bulk",
		"request_id", requestID,
		"lang", lang,
		"text_count", len(texts),
	)

	spansList, err := ner.BulkPredict(ctx, texts, bulkBatchSize)
	if err != nil {
		return nil, goerr.Wrap(err, "bulk named entity prediction failed", goerr.V("request_id", requestID))
	}

	citationsList := make([][]model.Span, len(spansList))
	othersList := make([][]model.Span, len(spansList))
	for i, spans := range spansList {
		citationsList[i], othersList[i] = partitionSpans(spans)
	}

	// Flatten all citation span texts into one batch, remembering which
	// input each came from.
	var refInput []string
	var refOrigin []int
	for inputIdx, citations := range citationsList {
		for _, span := range citations {
			refInput = append(refInput, span.Text())
			refOrigin = append(refOrigin, inputIdx)
		}
	}

	allRefParts, err := refPart.BulkPredict(ctx, refInput, bulkBatchSize)
	if err != nil {
		return nil, goerr.Wrap(err, "bulk reference part prediction failed", goerr.V("request_id", requestID))
	}

	refPartsByInput := make([][][]model.Span, len(texts))
	for i, parts := range allRefParts {
		inputIdx := refOrigin[i]
		refPartsByInput[inputIdx] = append(refPartsByInput[inputIdx], parts)
	}

	out := &model.BulkEntityList{
		Results: make([]model.EntityList, len(texts)),
	}
	for i := range texts {
		out.Results[i] = *serializeEntities(citationsList[i], refPartsByInput[i], othersList[i], withSpanText)
	}
	return out, nil
}

// partitionSpans splits spans into citation spans and everything else,
// preserving order
func partitionSpans(spans []model.Span) (citations, others []model.Span) {
	for _, span := range spans {
		if span.IsCitation() {
			citations = append(citations, span)
		} else {
			others = append(others, span)
		}
	}
	return citations, others
}

// predictRefParts runs the reference-part model over the surface text of each
// citation span. The result is index-aligned with citations.
func predictRefParts(ctx context.Context, refPart interfaces.Recognizer, citations []model.Span) ([][]model.Span, error) {
	input := make([]string, len(citations))
	for i, span := range citations {
		input[i] = span.Text()
	}
	return refPart.BulkPredict(ctx, input, bulkBatchSize)
}

// serializeEntities builds the response payload: non-citation spans first,
// then citation spans with their nested reference parts
func serializeEntities(citations []model.Span, refParts [][]model.Span, others []model.Span, withSpanText bool) *model.EntityList {
	entities := make([]model.Entity, 0, len(citations)+len(others))
	for _, span := range others {
		entities = append(entities, span.Serialize(withSpanText))
	}
	for i, span := range citations {
		entity := span.Serialize(withSpanText)
		entity.Parts = []model.Entity{}
		if i < len(refParts) {
			for _, part := range refParts[i] {
				entity.Parts = append(entity.Parts, part.Serialize(withSpanText))
			}
		}
		entities = append(entities, entity)
	}
	return &model.EntityList{Entities: entities}
}
