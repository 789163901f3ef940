package validate

import (
	"errors"
	"fmt"
)

const (
	violationLineTemplateConstant = "line %d: %s"
)

var (
	// ErrValidationFailed indicates validation stopped on a violation.
	ErrValidationFailed = errors.New("registry validation failed")
	// ErrMissingColumns indicates the header lacks a required column.
	ErrMissingColumns = errors.New("registry header missing required columns")
)

// Violation describes one rule failure. Line is 1-indexed with the header on
// line 1; zero marks a file-level violation.
type Violation struct {
	Line    int
	Column  string
	Value   string
	Message string
}

// String renders the violation as printed in reports.
func (violation Violation) String() string {
	if violation.Line == 0 {
		return violation.Message
	}
	return fmt.Sprintf(violationLineTemplateConstant, violation.Line, violation.Message)
}

// Result summarizes a validation pass.
type Result struct {
	Rows           int
	Violations     []Violation
	Halted         bool
	MissingColumns []string
}

// Options configures a single validation run.
type Options struct {
	RegistryPath string
	Strict       bool
}
