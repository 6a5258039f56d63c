// Package fileops provides the plain-text and filesystem primitives shared by
// the config editors: existence checks, directory and file copies that skip
// node_modules and .git, atomic write-with-mkdir, text reads, and the sentinel
// errors every editor reports for a missing file or a use-before-load.
package fileops
