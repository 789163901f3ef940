package ingest

import (
	"strings"

	"github.com/SocialCareData/initiatives/internal/registry"
)

const (
	configurationEventPathVariableKeyConstant = "event_path_variable"
	configurationUnknownAuthorKeyConstant     = "unknown_author"
	configurationCRLFKeyConstant              = "crlf"
	configurationFormFieldsKeyConstant        = "form_fields"
	configurationKeySeparatorConstant         = "."
)

// CommandConfiguration captures persistent settings for the ingest command.
type CommandConfiguration struct {
	EventPathVariable string   `mapstructure:"event_path_variable"`
	UnknownAuthor     string   `mapstructure:"unknown_author"`
	UseCRLF           bool     `mapstructure:"crlf"`
	FormFields        []string `mapstructure:"form_fields"`
}

// DefaultCommandConfiguration returns baseline configuration values for the ingest command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		EventPathVariable: DefaultEventPathVariable,
		UnknownAuthor:     DefaultUnknownAuthor,
		UseCRLF:           false,
		FormFields:        registry.FormFields(),
	}
}

// DefaultConfigurationValues produces Viper defaults for the ingest command rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationEventPathVariableKeyConstant: defaults.EventPathVariable,
		rootKey + configurationKeySeparatorConstant + configurationUnknownAuthorKeyConstant:     defaults.UnknownAuthor,
		rootKey + configurationKeySeparatorConstant + configurationCRLFKeyConstant:              defaults.UseCRLF,
		rootKey + configurationKeySeparatorConstant + configurationFormFieldsKeyConstant:        defaults.FormFields,
	}
}

// Sanitize trims configuration values and restores defaults for blank entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.EventPathVariable = strings.TrimSpace(configuration.EventPathVariable)
	if len(sanitized.EventPathVariable) == 0 {
		sanitized.EventPathVariable = DefaultEventPathVariable
	}

	sanitized.UnknownAuthor = strings.TrimSpace(configuration.UnknownAuthor)
	if len(sanitized.UnknownAuthor) == 0 {
		sanitized.UnknownAuthor = DefaultUnknownAuthor
	}

	sanitized.FormFields = sanitizeFormFields(configuration.FormFields)
	if len(sanitized.FormFields) == 0 {
		sanitized.FormFields = registry.FormFields()
	}

	return sanitized
}

func sanitizeFormFields(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.ToLower(strings.TrimSpace(candidate))
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
