// Package cli constructs the untracked command-line interface, wiring the Cobra root
// command, the configuration loader, and structured logging around the scan command.
package cli
