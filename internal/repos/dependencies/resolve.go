package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/untracked/internal/execshell"
	"github.com/temirov/untracked/internal/repos/backends"
	"github.com/temirov/untracked/internal/repos/filesystem"
	"github.com/temirov/untracked/internal/repos/shared"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default
// that reports command lifecycle events to observer.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveBackends returns the provided backends or builds the configured kinds.
func ResolveBackends(existing []shared.RepositoryBackend, kinds []backends.Kind, fileSystem shared.FileSystem, gitExecutor shared.GitExecutor, logger *zap.Logger) []shared.RepositoryBackend {
	if len(existing) > 0 {
		return existing
	}
	if len(kinds) == 0 {
		kinds = backends.DefaultKinds()
	}
	return backends.Build(kinds, fileSystem, gitExecutor, logger)
}
