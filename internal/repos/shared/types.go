package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/untracked/internal/execshell"
)

const (
	repoStatusCleanStringConstant = "clean"
	repoStatusDirtyStringConstant = "dirty"
	statusUntrackedStringConstant = "untracked"
	markerUntrackedConstant       = "u"
	markerModifiedConstant        = "m"
)

// RepoStatus is the verdict for a path recognized as a repository root.
type RepoStatus string

// Repository verdicts.
const (
	RepoStatusClean RepoStatus = RepoStatus(repoStatusCleanStringConstant)
	RepoStatusDirty RepoStatus = RepoStatus(repoStatusDirtyStringConstant)
)

// Status is the classification of any filesystem path: Untracked, or Tracked with a RepoStatus.
//
// The zero value is Untracked.
type Status struct {
	tracked    bool
	repoStatus RepoStatus
}

// StatusUntracked classifies a path with no repository anywhere beneath it.
var StatusUntracked = Status{}

// Tracked wraps a repository verdict into a Status.
func Tracked(repoStatus RepoStatus) Status {
	return Status{tracked: true, repoStatus: repoStatus}
}

// IsTracked reports whether at least one repository accounts for the path.
func (status Status) IsTracked() bool {
	return status.tracked
}

// RepoStatus returns the repository verdict and whether the status is tracked at all.
func (status Status) RepoStatus() (RepoStatus, bool) {
	return status.repoStatus, status.tracked
}

// IsClean reports whether the status is Tracked(Clean).
func (status Status) IsClean() bool {
	return status.tracked && status.repoStatus == RepoStatusClean
}

// Marker returns the report marker for the status; clean statuses have none.
func (status Status) Marker() (Marker, bool) {
	switch {
	case !status.tracked:
		return MarkerUntracked, true
	case status.repoStatus == RepoStatusClean:
		return "", false
	default:
		return MarkerModified, true
	}
}

// String renders the status for logs.
func (status Status) String() string {
	if !status.tracked {
		return statusUntrackedStringConstant
	}
	return string(status.repoStatus)
}

// Marker prefixes a reported path.
type Marker string

// Report markers.
const (
	MarkerUntracked Marker = Marker(markerUntrackedConstant)
	MarkerModified  Marker = Marker(markerModifiedConstant)
)

// Finding is a single reported path.
type Finding struct {
	Marker Marker
	Path   string
}

// FileSystem exposes the filesystem operations used while scanning.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Abs(path string) (string, error)
	EvalSymlinks(path string) (string, error)
}

// GitExecutor exposes the subset of shell execution used by repository backends.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryBackend recognizes one kind of repository and reports its status.
type RepositoryBackend interface {
	// Name identifies the backend in logs.
	Name() string
	// IsRoot reports whether path is the root of a repository of this kind.
	IsRoot(path string) bool
	// Status checks a path already confirmed by IsRoot. Inconclusive checks must report RepoStatusDirty.
	Status(executionContext context.Context, path string) RepoStatus
}
