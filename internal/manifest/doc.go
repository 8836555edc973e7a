// Package manifest loads expected plugin configuration from manifest files.
//
// A manifest maps plugin names to parameter records. The SystemConfig entry
// arrives as a sequence of named records and is normalized into the same
// mapping shape as every other plugin by NormalizeSystemConfig.
package manifest
