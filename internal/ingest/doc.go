// Package ingest merges a single issue-form submission into the initiatives
// registry.
//
// EventLoader reads the triggering issue event, Upsert applies the extracted
// fields to the row keyed by slug, and Service ties both to the CSV store.
// CommandBuilder exposes the workflow as the "ingest" Cobra command.
package ingest
