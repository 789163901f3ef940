package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/SocialCareData/initiatives/internal/registry"
)

const (
	missingColumnsTemplateConstant    = "Missing required columns: %s"
	emailDetectedTemplateConstant     = "possible email detected in '%s': '%s'"
	requiredTemplateConstant          = "'%s' is required and must be non-empty"
	requiredIfPresentTemplateConstant = "'%s' must be non-empty when the column is present"
	slugShapeTemplateConstant         = "'slug' must be kebab-case: '%s'"
	duplicateSlugTemplateConstant     = "duplicate slug '%s'"
	enumTemplateConstant              = "'%s'='%s' not in %s"
	dateTemplateConstant              = "'%s' must be YYYY-MM-DD (got '%s')"
	urlTemplateConstant               = "'%s' must be a valid http(s) URL (got '%s')"
	surplusColumnTemplateConstant     = "#%d"
	quotedChoiceTemplateConstant      = "'%s'"
	choiceSeparatorConstant           = ", "
	httpSchemeConstant                = "http"
	httpsSchemeConstant               = "https"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// ContainsEmail reports whether value holds something shaped like an email address.
func ContainsEmail(value string) bool {
	return len(value) > 0 && emailPattern.MatchString(value)
}

// IsKebabCase reports whether slug is lowercase alphanumeric words joined by single hyphens.
func IsKebabCase(slug string) bool {
	return slugPattern.MatchString(slug)
}

// IsISODate reports whether value is a calendar date in YYYY-MM-DD form.
func IsISODate(value string) bool {
	_, parseError := time.Parse(registry.DateLayout, value)
	return parseError == nil
}

// IsHTTPURL reports whether value is an absolute http or https URL with a host.
func IsHTTPURL(value string) bool {
	parsedURL, parseError := url.Parse(value)
	if parseError != nil {
		return false
	}
	if parsedURL.Scheme != httpSchemeConstant && parsedURL.Scheme != httpsSchemeConstant {
		return false
	}
	return len(parsedURL.Host) > 0
}

func missingColumns(table registry.Table) []string {
	missing := make([]string, 0)
	for _, column := range registry.RequiredColumns() {
		if !table.HasColumn(column) {
			missing = append(missing, column)
		}
	}
	sort.Strings(missing)
	return missing
}

func formatChoices(choices []string) string {
	sorted := append([]string{}, choices...)
	sort.Strings(sorted)

	quoted := make([]string, 0, len(sorted))
	for _, choice := range sorted {
		quoted = append(quoted, fmt.Sprintf(quotedChoiceTemplateConstant, choice))
	}
	return "[" + strings.Join(quoted, choiceSeparatorConstant) + "]"
}

func recordColumnName(header []string, index int) string {
	if index < len(header) {
		return header[index]
	}
	return fmt.Sprintf(surplusColumnTemplateConstant, index+1)
}
