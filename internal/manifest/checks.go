package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"mvdan.cc/sh/v3/syntax"
)

// Version specs that point somewhere other than the registry.
var nonRegistryPrefixes = []string{
	"workspace:", "npm:", "file:", "link:", "portal:", "patch:",
	"git+", "git:", "github:", "http://", "https://",
}

// checkRange reports whether spec is a usable version range. Dist-tags and
// non-registry specs are accepted as-is.
func checkRange(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return fmt.Errorf("empty version range")
	}
	if spec == "latest" || spec == "next" || spec == "*" {
		return nil
	}
	for _, p := range nonRegistryPrefixes {
		if strings.HasPrefix(spec, p) {
			return nil
		}
	}
	if _, err := semver.NewConstraint(spec); err != nil {
		return fmt.Errorf("invalid version range: %w", err)
	}
	return nil
}

// checkScript parses cmd as a POSIX shell command line.
func checkScript(name, cmd string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	if _, err := parser.Parse(strings.NewReader(cmd), name); err != nil {
		return fmt.Errorf("not valid shell: %w", err)
	}
	return nil
}
