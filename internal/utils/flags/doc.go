// Package flags provides pflag helpers shared by the CLI commands: yes/no
// toggle flags and usage strings for flags with a fixed set of choices.
package flags
