// Package utils holds the plumbing shared by the CLI commands: the Viper
// configuration loader, the zap logger factory and per-command loggers, and
// the argument checks that distinguish usage errors from operation errors.
package utils
