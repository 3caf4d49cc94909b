package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/untracked/internal/execshell"
	"github.com/temirov/untracked/internal/repos/backends"
	"github.com/temirov/untracked/internal/repos/dependencies"
	"github.com/temirov/untracked/internal/repos/filesystem"
	"github.com/temirov/untracked/internal/repos/shared"
)

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

type stubBackend struct{}

func (stubBackend) Name() string                                     { return "stub" }
func (stubBackend) IsRoot(string) bool                               { return false }
func (stubBackend) Status(context.Context, string) shared.RepoStatus { return shared.RepoStatusClean }

func TestResolveFileSystem(testInstance *testing.T) {
	require.IsType(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))

	existing := filesystem.OSFileSystem{}
	require.Equal(testInstance, existing, dependencies.ResolveFileSystem(existing))
}

func TestResolveGitExecutor(testInstance *testing.T) {
	existing := stubGitExecutor{}
	resolved, resolveError := dependencies.ResolveGitExecutor(existing, nil, nil)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, existing, resolved)

	constructed, constructError := dependencies.ResolveGitExecutor(nil, zap.NewNop(), nil)
	require.NoError(testInstance, constructError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, constructed)

	_, missingLoggerError := dependencies.ResolveGitExecutor(nil, nil, nil)
	require.ErrorIs(testInstance, missingLoggerError, execshell.ErrLoggerNotConfigured)
}

func TestResolveBackends(testInstance *testing.T) {
	existing := []shared.RepositoryBackend{stubBackend{}}
	require.Equal(testInstance, existing, dependencies.ResolveBackends(existing, nil, nil, nil, nil))

	defaults := dependencies.ResolveBackends(nil, nil, filesystem.OSFileSystem{}, stubGitExecutor{}, zap.NewNop())
	require.Len(testInstance, defaults, len(backends.DefaultKinds()))
	require.Equal(testInstance, string(backends.KindGit), defaults[0].Name())
	require.Equal(testInstance, string(backends.KindGitBare), defaults[1].Name())

	gitOnly := dependencies.ResolveBackends(nil, []backends.Kind{backends.KindGit}, filesystem.OSFileSystem{}, stubGitExecutor{}, zap.NewNop())
	require.Len(testInstance, gitOnly, 1)
}
