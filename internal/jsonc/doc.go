// Package jsonc reads JSON-with-comments files such as tsconfig.json and
// keeps object keys in their original order so rewritten files stay close to
// what the template author wrote.
package jsonc
