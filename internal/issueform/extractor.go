package issueform

import (
	"regexp"
	"strings"

	"github.com/SocialCareData/initiatives/internal/registry"
)

const (
	carriageReturnLineFeedConstant = "\r\n"
	lineFeedConstant               = "\n"
	closingFenceConstant           = "```"
	valueSeparatorConstant         = " "
)

var (
	headingPattern      = regexp.MustCompile(`(?m)^###[ \t]+([^\n]+)$`)
	openingFencePattern = regexp.MustCompile("^```[A-Za-z0-9]*$")
	defaultExtractor    = NewExtractor(nil)
)

// Extractor turns a submission body into allow-listed label/value pairs.
type Extractor struct {
	allowedLabels map[string]struct{}
}

// NewExtractor builds an extractor recognising labels. An empty list selects the registry form fields.
func NewExtractor(labels []string) *Extractor {
	if len(labels) == 0 {
		labels = registry.FormFields()
	}

	allowedLabels := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		normalizedLabel := normalizeLabel(label)
		if len(normalizedLabel) == 0 {
			continue
		}
		allowedLabels[normalizedLabel] = struct{}{}
	}

	return &Extractor{allowedLabels: allowedLabels}
}

// ExtractFields parses body with the registry form field allow-list.
func ExtractFields(body string) map[string]string {
	return defaultExtractor.Extract(body)
}

// Extract returns the recognised, non-empty sections of body keyed by lower-cased label.
func (extractor *Extractor) Extract(body string) map[string]string {
	fields := make(map[string]string)
	normalizedBody := strings.ReplaceAll(body, carriageReturnLineFeedConstant, lineFeedConstant)

	headingMatches := headingPattern.FindAllStringSubmatchIndex(normalizedBody, -1)
	for matchIndex, headingMatch := range headingMatches {
		label := normalizeLabel(normalizedBody[headingMatch[2]:headingMatch[3]])

		sectionEnd := len(normalizedBody)
		if matchIndex+1 < len(headingMatches) {
			sectionEnd = headingMatches[matchIndex+1][0]
		}

		if _, allowed := extractor.allowedLabels[label]; !allowed {
			continue
		}

		value := NormalizeValue(normalizedBody[headingMatch[1]:sectionEnd])
		if len(value) == 0 {
			continue
		}
		fields[label] = value
	}

	return fields
}

// NormalizeValue strips one enclosing fenced code block and collapses whitespace runs to single spaces.
func NormalizeValue(rawValue string) string {
	trimmedValue := strings.TrimSpace(strings.ReplaceAll(rawValue, carriageReturnLineFeedConstant, lineFeedConstant))
	if len(trimmedValue) == 0 {
		return ""
	}

	lines := strings.Split(trimmedValue, lineFeedConstant)
	if openingFencePattern.MatchString(lines[0]) {
		lines = lines[1:]
	}
	if len(lines) > 0 && lines[len(lines)-1] == closingFenceConstant {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(strings.Fields(strings.Join(lines, lineFeedConstant)), valueSeparatorConstant)
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
