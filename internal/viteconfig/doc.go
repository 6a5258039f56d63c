// Package viteconfig edits vite.config.ts files.
//
// The file is not parsed as TypeScript. Load extracts three things by pattern:
// the import lines, the comment block above the export, and the object passed
// to defineConfig. Known fields of that object are decoded into typed values;
// anything else is carried through as raw source text. Save regenerates the
// whole file from that model.
//
// Values are tagged: a String renders quoted, a Raw renders verbatim as code.
// Alias targets, plugin calls and proxy rewrite functions are always Raw.
package viteconfig
