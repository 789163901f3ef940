// Package cli constructs the initiatives command-line interface, wiring the
// Cobra command hierarchy, the layered Viper configuration, and structured
// logging. Run executes the command set and maps failures to exit codes.
package cli
