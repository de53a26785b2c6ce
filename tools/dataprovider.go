package tools

// DataProvider defines the interface for accessing the bundled
// dataset and schema files. This abstraction allows for dependency
// injection and makes the code testable without requiring actual
// embedded files to be present.
//
// Implementations:
//   - embeddedDataProvider: uses embed.FS for production
//   - MockDataProvider: uses an in-memory map for testing
type DataProvider interface {
	// ReadFile reads the named file and returns its contents.
	// The name is relative to the package root (e.g., "data/html.json").
	ReadFile(name string) ([]byte, error)
}
