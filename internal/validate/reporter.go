package validate

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	errorPrefixConstant              = "ERROR:"
	warningPrefixConstant            = "WARNING:"
	prefixedLineTemplateConstant     = "%s %s\n"
	fileNotFoundTemplateConstant     = "File not found: %s"
	passedSummaryTemplateConstant    = "Validation passed: %d rows.\n"
	completedSummaryTemplateConstant = "Validation completed: %d rows, %d violations.\n"
)

// Reporter writes validation diagnostics and summaries.
type Reporter struct {
	output       io.Writer
	errorColor   *color.Color
	warningColor *color.Color
}

// NewReporter constructs a Reporter. Prefixes are colored only when colorize is set.
func NewReporter(output io.Writer, colorize bool) *Reporter {
	if output == nil {
		output = io.Discard
	}

	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow)
	if colorize {
		errorColor.EnableColor()
		warningColor.EnableColor()
	} else {
		errorColor.DisableColor()
		warningColor.DisableColor()
	}

	return &Reporter{output: output, errorColor: errorColor, warningColor: warningColor}
}

// ReportFileNotFound announces a missing registry file.
func (reporter *Reporter) ReportFileNotFound(path string) error {
	return reporter.writeError(fmt.Sprintf(fileNotFoundTemplateConstant, path))
}

// ReportResult prints the violations and the closing summary for result.
// A halted result prints only the violation that stopped validation.
func (reporter *Reporter) ReportResult(result Result, strict bool) error {
	if result.Halted {
		if len(result.Violations) == 0 {
			return nil
		}
		return reporter.writeError(result.Violations[len(result.Violations)-1].String())
	}

	if strict {
		_, writeError := fmt.Fprintf(reporter.output, passedSummaryTemplateConstant, result.Rows)
		return writeError
	}

	for _, violation := range result.Violations {
		if _, writeError := fmt.Fprintf(reporter.output, prefixedLineTemplateConstant, reporter.warningColor.Sprint(warningPrefixConstant), violation.String()); writeError != nil {
			return writeError
		}
	}

	_, writeError := fmt.Fprintf(reporter.output, completedSummaryTemplateConstant, result.Rows, len(result.Violations))
	return writeError
}

func (reporter *Reporter) writeError(message string) error {
	_, writeError := fmt.Fprintf(reporter.output, prefixedLineTemplateConstant, reporter.errorColor.Sprint(errorPrefixConstant), message)
	return writeError
}
