// Package execshell runs the external configuration utility.
//
// ShellExecutor wraps a CommandRunner with zap logging, lifecycle
// notifications for a CommandEventObserver, and typed errors for
// non-zero exit codes and start failures. OSCommandRunner is the
// os/exec backed runner used outside of tests.
package execshell
