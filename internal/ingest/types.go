package ingest

import "time"

// Action names the change applied to the registry.
type Action string

// Supported ingestion actions.
const (
	ActionAdded   Action = "added"
	ActionUpdated Action = "updated"
)

// Provenance identifies the event responsible for a registry change.
type Provenance struct {
	IssueURL string
	Author   string
	Today    string
}

// Outcome summarizes a single upsert.
type Outcome struct {
	Slug        string
	Action      Action
	MissingSlug bool
}

// IssueEvent carries the issue attributes consumed by ingestion.
type IssueEvent struct {
	Body     string
	IssueURL string
	Author   string
}

// Options configures a single ingestion run.
type Options struct {
	RegistryPath string
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
