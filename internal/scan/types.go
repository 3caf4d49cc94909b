package scan

import (
	"context"
	"errors"

	"github.com/temirov/untracked/internal/repos/shared"
)

// ErrRootsNotClean reports that at least one scanned root was untracked, dirty, or unresolvable.
var ErrRootsNotClean = errors.New("scan found untracked or modified paths")

// ErrWorkingDirectoryMissing reports that no root was supplied and no working directory is known.
var ErrWorkingDirectoryMissing = errors.New("no scan roots provided and working directory unknown")

// ErrEmptyRoot reports a root argument that names no path.
var ErrEmptyRoot = errors.New("empty root path")

// CommandOptions captures the inputs of a single scan.
type CommandOptions struct {
	// Roots are scanned in order. When none are given, WorkingDirectory is scanned instead.
	Roots []string
	// WorkingDirectory anchors relative roots and is the fallback root.
	WorkingDirectory string
}

// TreeClassifier classifies a directory tree, reporting findings beneath it.
type TreeClassifier interface {
	Classify(executionContext context.Context, path string) shared.Status
}

// RootResult records the outcome for one scan root.
type RootResult struct {
	// Root is the argument as supplied after home expansion.
	Root string
	// Path is the canonical location that was classified. It is empty when Error is set.
	Path   string
	Status shared.Status
	// FindingCount is the number of lines reported for this root, its own line included.
	FindingCount int
	Error        error
}

// Clean reports whether the root resolved to a clean repository tree with nothing reported beneath it.
func (result RootResult) Clean() bool {
	return result.Error == nil && result.Status.IsClean() && result.FindingCount == 0
}

// Report aggregates root results in scan order.
type Report struct {
	Results []RootResult
}

// Clean reports whether every root is clean.
func (report Report) Clean() bool {
	for _, result := range report.Results {
		if !result.Clean() {
			return false
		}
	}
	return true
}
