package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements file access using the operating system primitives.
type OSFileSystem struct{}

// NewOSFileSystem constructs an OSFileSystem.
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{}
}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces the file contents with data using the supplied permissions.
func (OSFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	return os.WriteFile(path, data, permissions)
}
