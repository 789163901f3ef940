package ingest

import (
	"strings"

	"github.com/SocialCareData/initiatives/internal/registry"
)

// Upsert merges fields into the row whose slug matches case-insensitively, or appends a new row.
//
// The input slice is not modified. A submission without a slug still produces
// exactly one change, keyed by the empty slug, and is flagged in the outcome.
func Upsert(rows []registry.Row, fields map[string]string, provenance Provenance) ([]registry.Row, Outcome) {
	slug := strings.TrimSpace(fields[registry.ColumnSlug])
	outcome := Outcome{Slug: slug, MissingSlug: len(slug) == 0}

	updatedRows := make([]registry.Row, len(rows), len(rows)+1)
	copy(updatedRows, rows)

	for rowIndex, existingRow := range updatedRows {
		if !strings.EqualFold(existingRow.Slug(), slug) {
			continue
		}

		updatedRow := existingRow.Clone()
		applyFields(updatedRow, fields)
		if len(provenance.IssueURL) > 0 {
			updatedRow[registry.ColumnTrackingIssueURL] = provenance.IssueURL
		}
		updatedRow[registry.ColumnLastUpdatedDate] = provenance.Today
		updatedRow[registry.ColumnLastUpdatedBy] = provenance.Author

		updatedRows[rowIndex] = updatedRow
		outcome.Action = ActionUpdated
		return updatedRows, outcome
	}

	newRow := registry.NewRow()
	newRow[registry.ColumnEngagementStatus] = registry.EngagementStatusNotContacted
	newRow[registry.ColumnPriority] = registry.PriorityMedium
	newRow[registry.ColumnTrackingIssueURL] = provenance.IssueURL
	newRow[registry.ColumnLastUpdatedDate] = provenance.Today
	newRow[registry.ColumnLastUpdatedBy] = provenance.Author
	applyFields(newRow, fields)

	outcome.Action = ActionAdded
	return append(updatedRows, newRow), outcome
}

func applyFields(row registry.Row, fields map[string]string) {
	for column, value := range fields {
		row[column] = value
	}
}
