// Package issueform extracts field values from the Markdown body produced by
// an issue-form submission.
//
// Every "### Label" heading opens a section that runs until the next heading
// or the end of the body. Labels are case-folded; values lose one surrounding
// fenced code block and have their whitespace collapsed. Only labels in the
// extractor's allow-list with non-empty values are returned.
package issueform
