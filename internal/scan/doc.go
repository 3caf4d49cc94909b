// Package scan drives untracked-work scans over one or more roots.
//
// CommandBuilder wires the cobra command, Service classifies each root in order and
// prints its top-level verdict, and Report aggregates the per-root outcomes that
// decide the exit status.
package scan
