package scaffold

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed templates.yaml
var rawTemplates []byte

// Tool is one entry of a template's optional tool menu.
type Tool struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Template describes a project template.
type Template struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	Source      string `yaml:"source"`
	Tools       []Tool `yaml:"tools"`
}

// IsRemote reports whether the template is fetched from a git host.
func (t Template) IsRemote() bool {
	return IsGitHubSource(t.Source)
}

// ToolValues returns the tool ids offered by the template, in menu order.
func (t Template) ToolValues() []string {
	values := make([]string, len(t.Tools))
	for i, tool := range t.Tools {
		values[i] = tool.Value
	}
	return values
}

var (
	registryOnce sync.Once
	registry     []Template
	registryErr  error
)

func loadRegistry() ([]Template, error) {
	registryOnce.Do(func() {
		var doc struct {
			Templates []Template `yaml:"templates"`
		}
		if err := yaml.Unmarshal(rawTemplates, &doc); err != nil {
			registryErr = fmt.Errorf("parsing embedded templates.yaml: %w", err)
			return
		}
		registry = doc.Templates
	})
	return registry, registryErr
}

// Templates returns every known template in registry order.
func Templates() ([]Template, error) {
	list, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	return append([]Template(nil), list...), nil
}

// Lookup resolves a template by name. A raw "github:owner/repo" source is
// accepted as an ad-hoc remote template with no tool menu.
func Lookup(name string) (Template, error) {
	list, err := loadRegistry()
	if err != nil {
		return Template{}, err
	}
	for _, t := range list {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	if IsGitHubSource(name) {
		if _, err := ParseSource(name); err != nil {
			return Template{}, err
		}
		return Template{Name: "custom", DisplayName: name, Source: name}, nil
	}
	return Template{}, fmt.Errorf("unknown template %q", name)
}
