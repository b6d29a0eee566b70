package modelinfo

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// ModelMeta is display metadata and parameter defaults for one model
// family, keyed by the name before the Ollama tag suffix ("llama3" for
// "llama3:8b").
type ModelMeta struct {
	Name              string                 `yaml:"name"`
	DisplayName       string                 `yaml:"display_name"`
	DefaultParameters map[string]interface{} `yaml:"default_parameters"`
}

type registryFile struct {
	Models []ModelMeta `yaml:"models"`
}

// Registry holds the embedded model metadata. Read-only after load.
type Registry struct {
	byName map[string]ModelMeta
}

// NewRegistry loads the embedded YAML metadata.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/models.yaml")
	if err != nil {
		return nil, fmt.Errorf("read model metadata: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal model metadata: %w", err)
	}

	r := &Registry{byName: make(map[string]ModelMeta, len(file.Models))}
	for _, m := range file.Models {
		r.byName[m.Name] = m
	}
	return r, nil
}

// Lookup finds metadata for a model name, trying the exact name first
// and then the family name before the tag suffix.
func (r *Registry) Lookup(model string) (ModelMeta, bool) {
	if meta, ok := r.byName[model]; ok {
		return meta, true
	}
	family, _, found := strings.Cut(model, ":")
	if found {
		if meta, ok := r.byName[family]; ok {
			return meta, true
		}
	}
	return ModelMeta{}, false
}
