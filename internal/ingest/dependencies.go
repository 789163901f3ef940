package ingest

import (
	"io/fs"

	"github.com/SocialCareData/initiatives/internal/registry"
)

// RegistryStore loads and persists registry rows.
type RegistryStore interface {
	Load(path string) ([]registry.Row, error)
	Write(path string, rows []registry.Row) error
}

// FieldExtractor converts an issue body into form field values.
type FieldExtractor interface {
	Extract(body string) map[string]string
}

// EventSource yields the issue event that triggered ingestion.
type EventSource interface {
	Load() (IssueEvent, error)
}

// FileSystem provides the file operations required by ingestion.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// EnvironmentLookup resolves environment variables.
type EnvironmentLookup func(key string) (string, bool)
