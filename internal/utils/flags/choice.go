package flags

import (
	"fmt"
	"strings"
)

const choiceSeparator = "|"

// FormatChoiceUsage renders "`<a|B|c>` description", upper-casing the default choice.
// Blank and repeated choices are dropped.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayed := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalizedChoice := strings.ToLower(trimmedChoice)
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, duplicate := seen[normalizedChoice]; duplicate {
			continue
		}
		seen[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		displayed = append(displayed, trimmedChoice)
	}

	placeholder := "<" + strings.Join(displayed, choiceSeparator) + ">"
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(toggleBareUsageTemplate, placeholder)
	}
	return fmt.Sprintf(toggleUsageTemplate, placeholder, trimmedDescription)
}
