package formvalidator

import (
	"embed"
	"io/fs"
)

//go:embed definitions/*.yaml definitions/*.toml
var embeddedDefinitions embed.FS

// ExampleDefinitionsFS exposes the bundled sample form definitions
// (registration and newsletter).
func ExampleDefinitionsFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		return embeddedDefinitions
	}
	return sub
}
