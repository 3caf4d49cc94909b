package backends

import (
	"context"
	"path/filepath"

	"github.com/temirov/untracked/internal/repos/shared"
)

const (
	bareBackendNameConstant     = "git-bare"
	bareObjectsDirectoryName    = "objects"
	bareReferencesDirectoryName = "refs"
	bareHeadFileName            = "HEAD"
)

// BareBackend recognizes bare git repositories: directories that themselves hold objects/, refs/ and HEAD.
type BareBackend struct {
	fileSystem shared.FileSystem
}

// NewBareBackend constructs a bare repository backend.
func NewBareBackend(fileSystem shared.FileSystem) *BareBackend {
	return &BareBackend{fileSystem: fileSystem}
}

// Name identifies the backend.
func (backend *BareBackend) Name() string {
	return bareBackendNameConstant
}

// IsRoot reports whether path has the layout of a bare repository.
func (backend *BareBackend) IsRoot(path string) bool {
	for _, directoryName := range []string{bareObjectsDirectoryName, bareReferencesDirectoryName} {
		directoryInfo, statError := backend.fileSystem.Stat(filepath.Join(path, directoryName))
		if statError != nil || !directoryInfo.IsDir() {
			return false
		}
	}
	headInfo, statError := backend.fileSystem.Stat(filepath.Join(path, bareHeadFileName))
	return statError == nil && !headInfo.IsDir()
}

// Status is always clean: a bare repository has no working tree to hold uncommitted changes.
func (backend *BareBackend) Status(context.Context, string) shared.RepoStatus {
	return shared.RepoStatusClean
}
