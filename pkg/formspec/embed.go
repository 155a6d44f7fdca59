package formspec

import (
	"embed"
	"io/fs"
)

//go:embed specs/*
var embeddedSpecs embed.FS

// EmbeddedFS returns the bundled form spec documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSpecs, "specs")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// LoadEmbedded loads the bundled form specs.
func LoadEmbedded() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
