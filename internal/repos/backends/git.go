package backends

import (
	"bytes"
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/untracked/internal/execshell"
	"github.com/temirov/untracked/internal/repos/shared"
)

const (
	workingTreeBackendNameConstant       = "git"
	gitMetadataDirectoryNameConstant     = ".git"
	gitDirectoryOptionConstant           = "-C"
	gitStatusSubcommandConstant          = "status"
	gitPorcelainFlagConstant             = "--porcelain"
	gitFilePrefixConstant                = "gitdir:"
	gitFilePrefixReadLimitConstant       = 64
	gitOptionalLocksVariableConstant     = "GIT_OPTIONAL_LOCKS"
	gitOptionalLocksDisabledConstant     = "0"
	gitStatusInconclusiveMessageConstant = "git status inconclusive, treating repository as dirty"
	gitStatusCheckedMessageConstant      = "git status checked"
	logFieldRepositoryPathConstant       = "repository_path"
	logFieldRepoStatusConstant           = "repo_status"
)

// GitFileReader reads the leading bytes of a ".git" file.
type GitFileReader func(path string) ([]byte, error)

// WorkingTreeBackend recognizes git working trees and inspects them with `git status --porcelain`.
type WorkingTreeBackend struct {
	fileSystem     shared.FileSystem
	gitExecutor    shared.GitExecutor
	logger         *zap.Logger
	linkedWorktree GitFileReader
}

// NewWorkingTreeBackend constructs a backend that recognizes directories holding a ".git" directory.
func NewWorkingTreeBackend(fileSystem shared.FileSystem, gitExecutor shared.GitExecutor, logger *zap.Logger) *WorkingTreeBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkingTreeBackend{fileSystem: fileSystem, gitExecutor: gitExecutor, logger: logger}
}

// WithLinkedWorktrees also recognizes roots whose ".git" is a "gitdir:" file, as created by
// `git worktree add` and submodules.
func (backend *WorkingTreeBackend) WithLinkedWorktrees(reader GitFileReader) *WorkingTreeBackend {
	backend.linkedWorktree = reader
	return backend
}

// Name identifies the backend.
func (backend *WorkingTreeBackend) Name() string {
	return workingTreeBackendNameConstant
}

// IsRoot reports whether path contains git metadata.
func (backend *WorkingTreeBackend) IsRoot(path string) bool {
	metadataPath := filepath.Join(path, gitMetadataDirectoryNameConstant)
	metadataInfo, statError := backend.fileSystem.Stat(metadataPath)
	if statError != nil {
		return false
	}
	if metadataInfo.IsDir() {
		return true
	}
	if backend.linkedWorktree == nil || !metadataInfo.Mode().IsRegular() {
		return false
	}

	contents, readError := backend.linkedWorktree(metadataPath)
	if readError != nil {
		return false
	}
	if len(contents) > gitFilePrefixReadLimitConstant {
		contents = contents[:gitFilePrefixReadLimitConstant]
	}
	return bytes.HasPrefix(bytes.TrimSpace(contents), []byte(gitFilePrefixConstant))
}

// Status runs `git -C <path> status --porcelain` without optional locks, so the check never
// refreshes the index of the repository it inspects. Any output on either stream, a non-zero
// exit, or a failure to run git at all yields RepoStatusDirty.
func (backend *WorkingTreeBackend) Status(executionContext context.Context, path string) shared.RepoStatus {
	commandDetails := execshell.CommandDetails{
		Arguments:            []string{gitDirectoryOptionConstant, path, gitStatusSubcommandConstant, gitPorcelainFlagConstant},
		EnvironmentVariables: map[string]string{gitOptionalLocksVariableConstant: gitOptionalLocksDisabledConstant},
	}

	executionResult, executionError := backend.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		backend.logger.Debug(gitStatusInconclusiveMessageConstant, zap.String(logFieldRepositoryPathConstant, path), zap.Error(executionError))
		return shared.RepoStatusDirty
	}

	repoStatus := shared.RepoStatusDirty
	if len(executionResult.StandardOutput) == 0 && len(executionResult.StandardError) == 0 {
		repoStatus = shared.RepoStatusClean
	}

	backend.logger.Debug(gitStatusCheckedMessageConstant, zap.String(logFieldRepositoryPathConstant, path), zap.String(logFieldRepoStatusConstant, string(repoStatus)))
	return repoStatus
}
