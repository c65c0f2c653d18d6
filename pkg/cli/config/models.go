package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mekorot/linker/pkg/domain/model"
	"github.com/mekorot/linker/pkg/infra/gcs"
	"github.com/mekorot/linker/pkg/infra/recognizer"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Models holds the path to the model configuration file
type Models struct {
	Path string
}

// Flags returns CLI flags for model configuration
func (c *Models) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "model-config",
			Usage:       "Path to TOML model configuration file",
			Required:    true,
			Destination: &c.Path,
			Sources:     cli.EnvVars("LINKER_MODEL_CONFIG"),
		},
	}
}

// ModelSpec declares one recognizer: its architecture, the language and model
// type it serves, and an architecture-specific path
type ModelSpec struct {
	Arch string `toml:"arch"`
	Lang string `toml:"lang"`
	Path string `toml:"path"`
	Type string `toml:"type"`
}

// ModelConfig is the parsed model configuration file
type ModelConfig struct {
	Models []ModelSpec `toml:"models"`
}

// Load parses and validates the model configuration file
func (c *Models) Load() (*ModelConfig, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read model config", goerr.V("path", c.Path))
	}

	var cfg ModelConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse model config", goerr.V("path", c.Path))
	}

	if len(cfg.Models) == 0 {
		return nil, goerr.New("model config declares no models", goerr.V("path", c.Path))
	}

	seen := map[[2]string]bool{}
	for _, spec := range cfg.Models {
		switch model.ModelType(spec.Type) {
		case model.ModelTypeNamedEntity, model.ModelTypeRefPart:
		default:
			return nil, goerr.New("unknown model type", goerr.V("type", spec.Type))
		}
		if spec.Lang == "" {
			return nil, goerr.New("model entry is missing lang", goerr.V("type", spec.Type))
		}
		if spec.Arch != string(recognizer.ArchLLM) && spec.Path == "" {
			return nil, goerr.New("model entry is missing path",
				goerr.V("type", spec.Type), goerr.V("lang", spec.Lang))
		}

		key := [2]string{spec.Type, spec.Lang}
		if seen[key] {
			return nil, goerr.New("duplicate model for type and language",
				goerr.V("type", spec.Type), goerr.V("lang", spec.Lang))
		}
		seen[key] = true
	}

	return &cfg, nil
}

// NeedsObjectStore reports whether any model path points at object storage
func (c *ModelConfig) NeedsObjectStore() bool {
	for _, spec := range c.Models {
		if gcs.IsGSURL(spec.Path) {
			return true
		}
	}
	return false
}

// NeedsLLM reports whether any model uses the llm architecture
func (c *ModelConfig) NeedsLLM() bool {
	for _, spec := range c.Models {
		if spec.Arch == string(recognizer.ArchLLM) {
			return true
		}
	}
	return false
}
