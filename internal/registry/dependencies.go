package registry

import "io/fs"

// FileSystem provides the file operations required by CSVStore.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}
