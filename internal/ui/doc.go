// Package ui renders utility invocations as concise progress lines for
// operators who select the console log format, while structured telemetry
// continues to flow through the diagnostic logger.
package ui
