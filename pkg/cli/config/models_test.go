package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mekorot/linker/pkg/cli/config"
)

func writeModelConfig(t *testing.T, content string) *config.Models {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return &config.Models{Path: path}
}

func TestModels_Load(t *testing.T) {
	cfg := writeModelConfig(t, `
[[models]]
arch = "remote"
lang = "he"
path = "http://ner:8080"
type = "named_entity"

[[models]]
arch = "lexicon"
lang = "he"
path = "gs://models/ref-parts/lexicon.tar.gz"
type = "ref_part"
`)

	modelCfg, err := cfg.Load()
	gt.NoError(t, err)
	gt.Equal(t, len(modelCfg.Models), 2)
	gt.Equal(t, modelCfg.Models[0].Arch, "remote")
	gt.Equal(t, modelCfg.Models[1].Type, "ref_part")

	gt.Equal(t, modelCfg.NeedsObjectStore(), true)
	gt.Equal(t, modelCfg.NeedsLLM(), false)
}

func TestModels_Load_LLMArch(t *testing.T) {
	cfg := writeModelConfig(t, `
[[models]]
arch = "llm"
lang = "en"
type = "named_entity"
`)

	modelCfg, err := cfg.Load()
	gt.NoError(t, err)
	gt.Equal(t, modelCfg.NeedsLLM(), true)
	gt.Equal(t, modelCfg.NeedsObjectStore(), false)
}

func TestModels_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no models",
			content: ``,
		},
		{
			name: "unknown type",
			content: `
[[models]]
arch = "remote"
lang = "he"
path = "http://x"
type = "tokenizer"
`,
		},
		{
			name: "missing lang",
			content: `
[[models]]
arch = "remote"
path = "http://x"
type = "named_entity"
`,
		},
		{
			name: "missing path",
			content: `
[[models]]
arch = "remote"
lang = "he"
type = "named_entity"
`,
		},
		{
			name: "duplicate type and lang",
			content: `
[[models]]
arch = "remote"
lang = "he"
path = "http://a"
type = "named_entity"

[[models]]
arch = "remote"
lang = "he"
path = "http://b"
type = "named_entity"
`,
		},
		{
			name:    "not toml",
			content: `{{{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeModelConfig(t, tt.content)
			_, err := cfg.Load()
			gt.Error(t, err)
		})
	}
}

func TestModels_Load_MissingFile(t *testing.T) {
	cfg := &config.Models{Path: filepath.Join(t.TempDir(), "nope.toml")}
	_, err := cfg.Load()
	gt.Error(t, err)
}
