// Package filesystem exposes the operating-system backed file access used by
// the registry store and the ingestion event loader.
package filesystem
