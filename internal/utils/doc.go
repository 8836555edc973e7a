// Package utils exposes helpers shared by the CLI and the audit command.
//
// ConfigurationLoader layers embedded defaults, an optional configuration
// file, and TMXAUDIT_ environment variables through Viper. LoggerFactory
// builds the zap logger used for diagnostics, and FlushingWriter keeps
// report lines visible as soon as they are written.
package utils
