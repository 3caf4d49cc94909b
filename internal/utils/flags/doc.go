// Package flags holds helpers for describing and validating enumerated command-line flags.
package flags
