package interfaces

import (
	"context"

	"github.com/mekorot/linker/pkg/domain/model"
)

// LinkerUseCase defines the entity recognition operations exposed over HTTP
type LinkerUseCase interface {
	// RecognizeEntities analyzes a single text with the models registered
	// for lang
	RecognizeEntities(ctx context.Context, text, lang string, withSpanText bool) (*model.EntityList, error)

	// BulkRecognizeEntities analyzes multiple texts in one pass
	BulkRecognizeEntities(ctx context.Context, texts []string, lang string, withSpanText bool) (*model.BulkEntityList, error)
}
