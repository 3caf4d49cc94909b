// Package shared holds the value types and collaborator interfaces used across
// the repository scanning packages.
package shared
