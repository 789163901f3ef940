package registry

import "strings"

// Row is a single initiative keyed by column name. A missing key and an empty value are equivalent.
type Row map[string]string

// NewRow returns a row with every canonical column set to the empty string.
func NewRow() Row {
	row := make(Row, len(canonicalColumns))
	for _, column := range canonicalColumns {
		row[column] = ""
	}
	return row
}

// Value returns the stored value for column, or the empty string when absent.
func (row Row) Value(column string) string {
	if row == nil {
		return ""
	}
	return row[column]
}

// Slug returns the trimmed slug value.
func (row Row) Slug() string {
	return strings.TrimSpace(row.Value(ColumnSlug))
}

// Clone returns an independent copy of the row.
func (row Row) Clone() Row {
	cloned := make(Row, len(row))
	for column, value := range row {
		cloned[column] = value
	}
	return cloned
}

// Record renders the row as a CSV record in the provided column order.
func (row Row) Record(columns []string) []string {
	record := make([]string, len(columns))
	for index, column := range columns {
		record[index] = row.Value(column)
	}
	return record
}
