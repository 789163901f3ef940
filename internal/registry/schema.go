package registry

// Canonical registry column names.
const (
	ColumnSlug                   = "slug"
	ColumnName                   = "name"
	ColumnAcronym                = "acronym"
	ColumnOwnerOrg               = "owner_org"
	ColumnGovernanceBody         = "governance_body"
	ColumnHomepageURL            = "homepage_url"
	ColumnSpecRepoURL            = "spec_repo_url"
	ColumnScopeDomains           = "scope_domains"
	ColumnGeographies            = "geographies"
	ColumnStandardTypes          = "standard_types"
	ColumnStage                  = "stage"
	ColumnLicense                = "license"
	ColumnKnownAdopters          = "known_adopters"
	ColumnOverlapsWith           = "overlaps_with"
	ColumnDependencies           = "dependencies"
	ColumnInteroperabilityNotes  = "interoperability_notes"
	ColumnEngagementStatus       = "engagement_status"
	ColumnPriority               = "priority"
	ColumnInternalLead           = "internal_lead"
	ColumnLastInteractionDate    = "last_interaction_date"
	ColumnLastInteractionSummary = "last_interaction_summary"
	ColumnNextMilestone          = "next_milestone"
	ColumnNextMilestoneDate      = "next_milestone_date"
	ColumnTrackingIssueURL       = "tracking_issue_url"
	ColumnLastUpdatedDate        = "last_updated_date"
	ColumnLastUpdatedBy          = "last_updated_by"
)

// Engagement defaults applied to newly created rows.
const (
	EngagementStatusNotContacted = "not-contacted"
	PriorityMedium               = "medium"
)

// DateLayout is the only accepted layout for date-typed columns.
const DateLayout = "2006-01-02"

var canonicalColumns = []string{
	ColumnSlug,
	ColumnName,
	ColumnAcronym,
	ColumnOwnerOrg,
	ColumnGovernanceBody,
	ColumnHomepageURL,
	ColumnSpecRepoURL,
	ColumnScopeDomains,
	ColumnGeographies,
	ColumnStandardTypes,
	ColumnStage,
	ColumnLicense,
	ColumnKnownAdopters,
	ColumnOverlapsWith,
	ColumnDependencies,
	ColumnInteroperabilityNotes,
	ColumnEngagementStatus,
	ColumnPriority,
	ColumnInternalLead,
	ColumnLastInteractionDate,
	ColumnLastInteractionSummary,
	ColumnNextMilestone,
	ColumnNextMilestoneDate,
	ColumnTrackingIssueURL,
	ColumnLastUpdatedDate,
	ColumnLastUpdatedBy,
}

var formFields = []string{
	ColumnSlug,
	ColumnName,
	ColumnAcronym,
	ColumnOwnerOrg,
	ColumnGovernanceBody,
	ColumnHomepageURL,
	ColumnSpecRepoURL,
	ColumnScopeDomains,
	ColumnGeographies,
	ColumnStandardTypes,
	ColumnStage,
	ColumnLicense,
	ColumnKnownAdopters,
	ColumnOverlapsWith,
	ColumnDependencies,
	ColumnInteroperabilityNotes,
}

var requiredColumns = []string{ColumnName}

var requiredIfPresentColumns = []string{ColumnLastUpdatedDate, ColumnLastUpdatedBy}

var enumColumns = []string{ColumnStage, ColumnEngagementStatus, ColumnPriority}

var enumValues = map[string][]string{
	ColumnStage: {"planning", "draft", "active", "deprecated"},
	ColumnEngagementStatus: {
		EngagementStatusNotContacted,
		"outreach-sent",
		"in-conversation",
		"collaborating",
		"paused",
		"no-response",
		"not-pursuing",
	},
	ColumnPriority: {"high", PriorityMedium, "low"},
}

var dateColumns = []string{ColumnLastInteractionDate, ColumnNextMilestoneDate, ColumnLastUpdatedDate}

var urlColumns = []string{ColumnHomepageURL, ColumnSpecRepoURL, ColumnTrackingIssueURL}

var listColumns = []string{
	ColumnScopeDomains,
	ColumnGeographies,
	ColumnStandardTypes,
	ColumnKnownAdopters,
	ColumnOverlapsWith,
	ColumnDependencies,
}

// CanonicalColumns returns the 26 registry columns in persisted order.
func CanonicalColumns() []string {
	return duplicateStrings(canonicalColumns)
}

// FormFields returns the labels accepted from issue-form submissions.
func FormFields() []string {
	return duplicateStrings(formFields)
}

// RequiredColumns returns the columns that must exist in the header and be non-empty on every row.
func RequiredColumns() []string {
	return duplicateStrings(requiredColumns)
}

// RequiredIfPresentColumns returns the columns that must be non-empty whenever they appear in the header.
func RequiredIfPresentColumns() []string {
	return duplicateStrings(requiredIfPresentColumns)
}

// EnumColumns returns the enumerated columns in evaluation order.
func EnumColumns() []string {
	return duplicateStrings(enumColumns)
}

// EnumValues returns the allowed values for an enumerated column.
func EnumValues(column string) ([]string, bool) {
	values, exists := enumValues[column]
	if !exists {
		return nil, false
	}
	return duplicateStrings(values), true
}

// DateColumns returns the columns holding YYYY-MM-DD dates.
func DateColumns() []string {
	return duplicateStrings(dateColumns)
}

// URLColumns returns the columns holding absolute http(s) URLs.
func URLColumns() []string {
	return duplicateStrings(urlColumns)
}

// ListColumns returns the free-form delimited list columns.
func ListColumns() []string {
	return duplicateStrings(listColumns)
}

func duplicateStrings(values []string) []string {
	duplicated := make([]string, len(values))
	copy(duplicated, values)
	return duplicated
}
