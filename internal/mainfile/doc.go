// Package mainfile rebuilds an application entry file such as src/main.ts.
//
// Only the import lines of the original file are kept. The rest is
// regenerated as a list of setup statements that starts with creating the
// app and ends with mounting it, so tools can register plugins in between.
package mainfile
