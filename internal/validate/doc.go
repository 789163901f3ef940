// Package validate checks a registry file against the schema rules and
// reports violations.
//
// A single Validator runs the shared rule set in either strict mode, which
// stops at the first violation, or permissive mode, which records every
// violation and always completes. A missing required column stops validation
// in both modes.
package validate
