package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed all:scaffolds
var scaffoldFS embed.FS

//go:embed all:resources
var resourceFS embed.FS

// Resources returns the files tool integrations copy into projects, rooted
// so that "web/store" names the pinia store skeleton.
func Resources() fs.FS {
	sub, err := fs.Sub(resourceFS, "resources")
	if err != nil {
		panic(err)
	}
	return sub
}
