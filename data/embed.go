package data

import (
	"embed"
	"io/fs"
)

//go:embed public
var public embed.FS

// Public returns the browser front end rooted at its index.html
func Public() fs.FS {
	sub, err := fs.Sub(public, "public")
	if err != nil {
		// The directory is embedded at build time, so this cannot fail
		panic(err)
	}
	return sub
}
