package content

import (
	"embed"
	"io/fs"
)

//go:embed posts pages
var embedded embed.FS

// Embedded returns the articles compiled into the binary
func Embedded() fs.FS {
	return embedded
}
