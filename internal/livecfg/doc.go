// Package livecfg retrieves the live configuration of a plugin from the
// external configuration utility.
package livecfg
