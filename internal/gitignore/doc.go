// Package gitignore appends entries to a project's .gitignore without
// repeating lines that are already there.
package gitignore
