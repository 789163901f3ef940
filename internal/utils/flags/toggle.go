package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueValue             = "true"
	toggleFalseValue            = "false"
	toggleTypeName              = "bool"
	toggleInvalidValueTemplate  = "invalid toggle value %q (use yes/no, on/off, true/false, 1/0)"
	toggleDefaultOnPlaceholder  = "<YES|no>"
	toggleDefaultOffPlaceholder = "<yes|NO>"
	toggleUsageTemplate         = "`%s` %s"
	toggleBareUsageTemplate     = "`%s`"
	longFlagPrefix              = "--"
	shortFlagPrefix             = "-"
	flagValueSeparator          = "="
	argumentTerminator          = "--"
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"on":    true,
	"1":     true,
	"t":     true,
	"y":     true,
	"false": false,
	"no":    false,
	"off":   false,
	"0":     false,
	"f":     false,
	"n":     false,
}

type toggleRegistry struct {
	mutex      sync.RWMutex
	names      map[string]struct{}
	shorthands map[string]struct{}
}

var registeredToggles = &toggleRegistry{
	names:      map[string]struct{}{},
	shorthands: map[string]struct{}{},
}

// AddToggleFlag registers a boolean flag that accepts yes/no style values as
// well as the bare "--name" form.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	value := &toggleValue{current: defaultValue, target: target}
	if target != nil {
		*target = defaultValue
	}
	flagSet.VarP(value, name, shorthand, toggleUsage(usage, defaultValue))

	if flag := flagSet.Lookup(name); flag != nil {
		flag.NoOptDefVal = toggleTrueValue
	}

	registeredToggles.add(name, shorthand)
}

// NormalizeToggleArguments joins a registered toggle flag with a following
// yes/no literal ("--strict no" becomes "--strict=no"). Any other following
// argument is left alone so positional arguments survive.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == argumentTerminator {
			normalized = append(normalized, arguments[index:]...)
			break
		}

		if registeredToggles.matches(current) && index+1 < len(arguments) && isToggleLiteral(arguments[index+1]) {
			normalized = append(normalized, current+flagValueSeparator+arguments[index+1])
			index++
			continue
		}

		normalized = append(normalized, current)
	}

	return normalized
}

func toggleUsage(description string, defaultValue bool) string {
	placeholder := toggleDefaultOffPlaceholder
	if defaultValue {
		placeholder = toggleDefaultOnPlaceholder
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(toggleBareUsageTemplate, placeholder)
	}
	return fmt.Sprintf(toggleUsageTemplate, placeholder, trimmedDescription)
}

func parseToggle(rawValue string) (bool, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return true, nil
	}
	parsedValue, known := toggleLiterals[normalizedValue]
	if !known {
		return false, fmt.Errorf(toggleInvalidValueTemplate, rawValue)
	}
	return parsedValue, nil
}

func isToggleLiteral(candidate string) bool {
	_, known := toggleLiterals[strings.ToLower(strings.TrimSpace(candidate))]
	return known
}

type toggleValue struct {
	current bool
	target  *bool
}

func (value *toggleValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggle(rawValue)
	if parseError != nil {
		return parseError
	}
	value.current = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
	return nil
}

func (value *toggleValue) String() string {
	if value != nil && value.current {
		return toggleTrueValue
	}
	return toggleFalseValue
}

func (value *toggleValue) Type() string {
	return toggleTypeName
}

func (registry *toggleRegistry) add(name string, shorthand string) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.names[name] = struct{}{}
	if len(shorthand) > 0 {
		registry.shorthands[shorthand] = struct{}{}
	}
}

// matches reports whether argument is a bare registered toggle such as
// "--strict" or "-s". Arguments already carrying "=value" never match.
func (registry *toggleRegistry) matches(argument string) bool {
	if strings.Contains(argument, flagValueSeparator) {
		return false
	}

	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	if strings.HasPrefix(argument, longFlagPrefix) {
		_, exists := registry.names[strings.TrimPrefix(argument, longFlagPrefix)]
		return exists
	}
	if strings.HasPrefix(argument, shortFlagPrefix) {
		shorthand := strings.TrimPrefix(argument, shortFlagPrefix)
		if len(shorthand) != 1 {
			return false
		}
		_, exists := registry.shorthands[shorthand]
		return exists
	}
	return false
}
