package fileops

import "errors"

var (
	// ErrNotFound is returned when a file that must pre-exist is absent.
	ErrNotFound = errors.New("file does not exist")

	// ErrNotLoaded is returned when an editor is used before Load/Init.
	ErrNotLoaded = errors.New("config not loaded")
)
