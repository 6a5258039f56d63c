// Package manifest edits a project's package.json. It loads the manifest into
// an ordered document, applies additive dependency, script and field edits,
// and writes it back with known fields in canonical order and every
// dependency map sorted by name.
//
// Loading also validates the manifest against an embedded JSON schema. Schema
// issues, unparseable version ranges and scripts that are not valid shell are
// reported as warnings, never as errors.
package manifest
