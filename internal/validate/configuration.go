package validate

const (
	configurationStrictKeyConstant    = "strict"
	configurationColorKeyConstant     = "color"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures persistent settings for the validate command.
type CommandConfiguration struct {
	Strict bool `mapstructure:"strict"`
	Color  bool `mapstructure:"color"`
}

// DefaultCommandConfiguration returns baseline configuration values for the validate command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Strict: true,
		Color:  true,
	}
}

// DefaultConfigurationValues produces Viper defaults for the validate command rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationStrictKeyConstant: defaults.Strict,
		rootKey + configurationKeySeparatorConstant + configurationColorKeyConstant:  defaults.Color,
	}
}
