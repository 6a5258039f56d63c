package integrations

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/kickstart-labs/kickstart/internal/manifest"
)

// ToolName identifies an optional tool of the web-vue template.
type ToolName string

const (
	EslintPrettier ToolName = "eslint-prettier"
	DevTools       ToolName = "devtools"
	Tailwind       ToolName = "tailwindcss"
	Axios          ToolName = "axios"
	Pinia          ToolName = "pinia"
	VueRouter      ToolName = "vue-router"
	ViteProxy      ToolName = "vite-proxy"
	Env            ToolName = "env"
	Scss           ToolName = "scss"
	AntDesignVue   ToolName = "ant-design-vue"
)

// AllTools returns all supported tool names in menu order.
func AllTools() []ToolName {
	return []ToolName{
		EslintPrettier, DevTools, Tailwind, Axios, Pinia,
		VueRouter, ViteProxy, Env, Scss, AntDesignVue,
	}
}

// ParseToolName converts a string to a ToolName, returning false if invalid.
func ParseToolName(s string) (ToolName, bool) {
	for _, t := range AllTools() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ParseToolNames parses a list of tool ids, dropping blanks and duplicates.
func ParseToolNames(values []string) ([]ToolName, error) {
	var (
		out  []ToolName
		seen = make(map[ToolName]bool)
	)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		name, ok := ParseToolName(v)
		if !ok {
			return nil, fmt.Errorf("unknown tool %q", v)
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out, nil
}

//go:embed tools.yaml
var rawTools []byte

var (
	requirementsOnce sync.Once
	requirements     map[ToolName]manifest.Requirements
	requirementsErr  error
)

// Requirements returns the packages a tool adds to package.json.
func Requirements(tool ToolName) (manifest.Requirements, error) {
	requirementsOnce.Do(func() {
		if err := yaml.Unmarshal(rawTools, &requirements); err != nil {
			requirementsErr = fmt.Errorf("parsing embedded tools.yaml: %w", err)
		}
	})
	if requirementsErr != nil {
		return manifest.Requirements{}, requirementsErr
	}
	req, ok := requirements[tool]
	if !ok {
		return manifest.Requirements{}, fmt.Errorf("no requirements for tool %q", tool)
	}
	return req, nil
}
