// Package tsconfig edits TypeScript compiler configuration files such as
// tsconfig.app.json. Comments in the source are dropped on load; the file is
// written back as plain JSON with three-space indentation and the original
// key order.
package tsconfig
