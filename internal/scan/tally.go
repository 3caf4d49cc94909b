package scan

import "github.com/temirov/untracked/internal/repos/shared"

// FindingTally forwards findings to another reporter and counts them.
type FindingTally struct {
	reporter shared.FindingReporter
	count    int
}

// NewFindingTally wraps reporter. A nil reporter discards findings but still counts them.
func NewFindingTally(reporter shared.FindingReporter) *FindingTally {
	if reporter == nil {
		reporter = shared.NewWriterFindingReporter(nil, nil)
	}
	return &FindingTally{reporter: reporter}
}

// Report implements shared.FindingReporter.
func (tally *FindingTally) Report(finding shared.Finding) {
	tally.count++
	tally.reporter.Report(finding)
}

// Count returns the number of findings reported so far.
func (tally *FindingTally) Count() int {
	return tally.count
}
