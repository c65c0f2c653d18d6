// Package recognizer provides the Recognizer implementations selectable via
// model configuration: an HTTP client for external inference servers, an
// LLM-backed extractor, and a self-contained lexicon matcher.
package recognizer

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/mekorot/linker/pkg/domain/interfaces"
)

// Arch identifies a recognizer architecture
type Arch string

const (
	// ArchRemote delegates inference to an external HTTP model server
	ArchRemote Arch = "remote"
	// ArchLLM extracts entities with a generative model via gollem
	ArchLLM Arch = "llm"
	// ArchLexicon matches a term dictionary against the text
	ArchLexicon Arch = "lexicon"
)

// Deps carries the external clients recognizers may need. Fields are nil when
// the corresponding backend is unused.
type Deps struct {
	Store interfaces.ObjectStore
	LLM   gollem.LLMClient
}

// New creates a Recognizer of the given architecture. The meaning of path
// depends on arch: a base URL for remote, a lexicon file path (local or
// gs://) for lexicon. The llm architecture ignores path, as model selection
// belongs to the LLM client configuration.
func New(ctx context.Context, arch Arch, path string, deps Deps) (interfaces.Recognizer, error) {
	switch arch {
	case ArchRemote:
		return NewRemote(path), nil
	case ArchLLM:
		if deps.LLM == nil {
			return nil, goerr.New("llm architecture requires an LLM client", goerr.V("path", path))
		}
		return NewLLM(deps.LLM)
	case ArchLexicon:
		return NewLexicon(ctx, path, deps.Store)
	default:
		return nil, goerr.New("unknown recognizer architecture", goerr.V("arch", string(arch)))
	}
}
