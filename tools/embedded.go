package tools

import "embed"

// Embed the generated reference datasets and their JSON Schemas into
// the binary. This ensures the MCP server works standalone without
// requiring external data files to be present on the filesystem.
//
// Embedded files:
//   - data/*.json: one generated dataset per language
//   - schemas/*.schema.json: structural schema per language
//
//go:embed data/*.json
//go:embed schemas/*.schema.json
var embeddedFS embed.FS

// embeddedDataProvider implements DataProvider using embed.FS. This
// is the production implementation.
type embeddedDataProvider struct {
	fs embed.FS
}

// NewEmbeddedDataProvider creates a production DataProvider backed by
// the embedded dataset files.
func NewEmbeddedDataProvider() DataProvider {
	return &embeddedDataProvider{fs: embeddedFS}
}

// ReadFile reads the named file from the embedded filesystem.
func (p *embeddedDataProvider) ReadFile(name string) ([]byte, error) {
	return p.fs.ReadFile(name)
}

// Default provider used by package-level functions.
var defaultDataProvider DataProvider = NewEmbeddedDataProvider()
