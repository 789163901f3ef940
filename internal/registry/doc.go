// Package registry defines the initiatives registry data model and its
// CSV-backed store.
//
// The canonical column order, the issue-form allow-list, and the validation
// rule tables (enumerations, date, URL, and list columns) are fixed at compile
// time and exposed through accessor functions returning copies. CSVStore loads
// rows keyed by the file's own header and rewrites the whole file in canonical
// column order, sorted by slug.
package registry
