package validate

import (
	"fmt"
	"strings"

	"github.com/SocialCareData/initiatives/internal/registry"
)

const (
	headerLineNumberConstant = 1
)

// Validator applies the registry rule set to a parsed table.
type Validator struct {
	strict bool
}

// NewValidator constructs a Validator. Strict validators stop at the first violation.
func NewValidator(strict bool) *Validator {
	return &Validator{strict: strict}
}

type violationSink func(violation Violation) bool

// Validate checks the header and then every record in file order.
func (validator *Validator) Validate(table registry.Table) Result {
	result := Result{Violations: []Violation{}}

	if missing := missingColumns(table); len(missing) > 0 {
		result.MissingColumns = missing
		result.Violations = append(result.Violations, Violation{
			Message: fmt.Sprintf(missingColumnsTemplateConstant, formatChoices(missing)),
		})
		result.Halted = true
		return result
	}

	record := func(violation Violation) bool {
		result.Violations = append(result.Violations, violation)
		if validator.strict {
			result.Halted = true
			return false
		}
		return true
	}

	seenSlugs := make(map[string]struct{})
	for recordIndex, rawRecord := range table.Records {
		result.Rows++
		lineNumber := recordIndex + headerLineNumberConstant + 1
		if !validator.checkRecord(table, rawRecord, lineNumber, seenSlugs, record) {
			return result
		}
	}

	return result
}

func (validator *Validator) checkRecord(table registry.Table, rawRecord []string, lineNumber int, seenSlugs map[string]struct{}, emit violationSink) bool {
	for fieldIndex, value := range rawRecord {
		if !ContainsEmail(value) {
			continue
		}
		column := recordColumnName(table.Header, fieldIndex)
		if !emit(newViolation(lineNumber, column, value, emailDetectedTemplateConstant, column, value)) {
			return false
		}
	}

	row := table.Row(rawRecord)
	trimmedValue := func(column string) string {
		return strings.TrimSpace(row.Value(column))
	}

	for _, column := range registry.RequiredColumns() {
		if len(trimmedValue(column)) == 0 {
			if !emit(newViolation(lineNumber, column, "", requiredTemplateConstant, column)) {
				return false
			}
		}
	}

	for _, column := range registry.RequiredIfPresentColumns() {
		if !table.HasColumn(column) {
			continue
		}
		if len(trimmedValue(column)) == 0 {
			if !emit(newViolation(lineNumber, column, "", requiredIfPresentTemplateConstant, column)) {
				return false
			}
		}
	}

	slug := trimmedValue(registry.ColumnSlug)
	if !IsKebabCase(slug) {
		if !emit(newViolation(lineNumber, registry.ColumnSlug, slug, slugShapeTemplateConstant, slug)) {
			return false
		}
	}
	slugKey := strings.ToLower(slug)
	if _, seen := seenSlugs[slugKey]; seen {
		if !emit(newViolation(lineNumber, registry.ColumnSlug, slug, duplicateSlugTemplateConstant, slug)) {
			return false
		}
	}
	seenSlugs[slugKey] = struct{}{}

	for _, column := range registry.EnumColumns() {
		if !table.HasColumn(column) {
			continue
		}
		value := trimmedValue(column)
		allowedValues, _ := registry.EnumValues(column)
		if len(value) == 0 || containsValue(allowedValues, value) {
			continue
		}
		if !emit(newViolation(lineNumber, column, value, enumTemplateConstant, column, value, formatChoices(allowedValues))) {
			return false
		}
	}

	for _, column := range registry.DateColumns() {
		if !table.HasColumn(column) {
			continue
		}
		value := trimmedValue(column)
		if len(value) == 0 || IsISODate(value) {
			continue
		}
		if !emit(newViolation(lineNumber, column, value, dateTemplateConstant, column, value)) {
			return false
		}
	}

	for _, column := range registry.URLColumns() {
		if !table.HasColumn(column) {
			continue
		}
		value := trimmedValue(column)
		if len(value) == 0 || IsHTTPURL(value) {
			continue
		}
		if !emit(newViolation(lineNumber, column, value, urlTemplateConstant, column, value)) {
			return false
		}
	}

	// List columns accept any value.
	return true
}

func newViolation(lineNumber int, column string, value string, template string, arguments ...any) Violation {
	return Violation{
		Line:    lineNumber,
		Column:  column,
		Value:   value,
		Message: fmt.Sprintf(template, arguments...),
	}
}

func containsValue(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}
