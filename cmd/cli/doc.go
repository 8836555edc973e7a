// Package cli constructs the tmxaudit command-line interface. It wires the
// audit command to the Viper configuration loader and the zap logger, and
// translates the audit outcome into the process exit status.
package cli
