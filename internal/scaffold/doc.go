// Package scaffold materializes new projects from templates. Local templates
// are embedded in the binary under scaffolds/; remote ones are shallow-cloned
// from GitHub. The package also embeds the resource files that tool
// integrations copy into a generated project.
package scaffold
