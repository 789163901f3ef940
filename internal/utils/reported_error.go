package utils

import "errors"

// ReportedError marks a failure whose diagnostics were already written for the user.
type ReportedError struct {
	Cause error
}

// Error returns the underlying failure description.
func (reportedError *ReportedError) Error() string {
	if reportedError.Cause == nil {
		return ""
	}
	return reportedError.Cause.Error()
}

// Unwrap exposes the underlying cause.
func (reportedError *ReportedError) Unwrap() error {
	return reportedError.Cause
}

// IsReportedError reports whether err has already been presented to the user.
func IsReportedError(err error) bool {
	var reportedError *ReportedError
	return errors.As(err, &reportedError)
}
