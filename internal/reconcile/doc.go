// Package reconcile compares expected plugin configuration against the live
// configuration reported by the configuration utility.
//
// AuditPlugin performs the field-by-field comparison for one plugin, Reporter
// renders the resulting remediation commands and warnings, and Service drives
// the comparison across manifest files while accumulating the mismatch count
// that becomes the process exit status. CommandBuilder wires the Cobra
// command.
package reconcile
