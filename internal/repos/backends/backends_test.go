package backends_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/untracked/internal/execshell"
	"github.com/temirov/untracked/internal/repos/backends"
	"github.com/temirov/untracked/internal/repos/filesystem"
	"github.com/temirov/untracked/internal/repos/shared"
)

const (
	testDirectoryPermissionsConstant = 0o755
	testFilePermissionsConstant      = 0o600
)

type gitExecutorStub struct {
	result          execshell.ExecutionResult
	err             error
	receivedDetails []execshell.CommandDetails
}

func (stub *gitExecutorStub) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	stub.receivedDetails = append(stub.receivedDetails, details)
	return stub.result, stub.err
}

func TestWorkingTreeBackendStatus(testInstance *testing.T) {
	repositoryPath := "/workspace/service"

	testCases := []struct {
		name           string
		result         execshell.ExecutionResult
		err            error
		expectedStatus shared.RepoStatus
	}{
		{name: "empty_output_is_clean", expectedStatus: shared.RepoStatusClean},
		{name: "standard_output_is_dirty", result: execshell.ExecutionResult{StandardOutput: " M main.go\n"}, expectedStatus: shared.RepoStatusDirty},
		{name: "standard_error_is_dirty", result: execshell.ExecutionResult{StandardError: "warning: could not open directory\n"}, expectedStatus: shared.RepoStatusDirty},
		{name: "exit_failure_is_dirty", err: execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 128}}, expectedStatus: shared.RepoStatusDirty},
		{name: "spawn_failure_is_dirty", err: execshell.CommandExecutionError{Cause: errors.New("executable file not found")}, expectedStatus: shared.RepoStatusDirty},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &gitExecutorStub{result: testCase.result, err: testCase.err}
			backend := backends.NewWorkingTreeBackend(filesystem.OSFileSystem{}, executor, zap.NewNop())

			repoStatus := backend.Status(context.Background(), repositoryPath)

			require.Equal(testInstance, testCase.expectedStatus, repoStatus)
			require.Len(testInstance, executor.receivedDetails, 1)
			require.Equal(testInstance, []string{"-C", repositoryPath, "status", "--porcelain"}, executor.receivedDetails[0].Arguments)
			require.Equal(testInstance, map[string]string{"GIT_OPTIONAL_LOCKS": "0"}, executor.receivedDetails[0].EnvironmentVariables)
		})
	}
}

func TestWorkingTreeBackendIsRoot(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()

	repositoryPath := filepath.Join(rootDirectory, "repository")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryPath, ".git"), testDirectoryPermissionsConstant))

	plainPath := filepath.Join(rootDirectory, "plain")
	require.NoError(testInstance, os.MkdirAll(plainPath, testDirectoryPermissionsConstant))

	worktreePath := filepath.Join(rootDirectory, "worktree")
	require.NoError(testInstance, os.MkdirAll(worktreePath, testDirectoryPermissionsConstant))
	require.NoError(testInstance, os.WriteFile(filepath.Join(worktreePath, ".git"), []byte("gitdir: /elsewhere/.git/worktrees/worktree\n"), testFilePermissionsConstant))

	strayPath := filepath.Join(rootDirectory, "stray")
	require.NoError(testInstance, os.MkdirAll(strayPath, testDirectoryPermissionsConstant))
	require.NoError(testInstance, os.WriteFile(filepath.Join(strayPath, ".git"), []byte("not a pointer"), testFilePermissionsConstant))

	plainBackend := backends.NewWorkingTreeBackend(filesystem.OSFileSystem{}, &gitExecutorStub{}, nil)
	require.True(testInstance, plainBackend.IsRoot(repositoryPath))
	require.False(testInstance, plainBackend.IsRoot(plainPath))
	require.False(testInstance, plainBackend.IsRoot(worktreePath))

	linkedBackend := backends.NewWorkingTreeBackend(filesystem.OSFileSystem{}, &gitExecutorStub{}, nil).WithLinkedWorktrees(os.ReadFile)
	require.True(testInstance, linkedBackend.IsRoot(repositoryPath))
	require.True(testInstance, linkedBackend.IsRoot(worktreePath))
	require.False(testInstance, linkedBackend.IsRoot(strayPath))
	require.False(testInstance, linkedBackend.IsRoot(plainPath))
}

func TestBareBackendRecognizesBareLayout(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()

	barePath := filepath.Join(rootDirectory, "mirror.git")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(barePath, "objects"), testDirectoryPermissionsConstant))
	require.NoError(testInstance, os.MkdirAll(filepath.Join(barePath, "refs"), testDirectoryPermissionsConstant))
	require.NoError(testInstance, os.WriteFile(filepath.Join(barePath, "HEAD"), []byte("ref: refs/heads/main\n"), testFilePermissionsConstant))

	partialPath := filepath.Join(rootDirectory, "partial")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(partialPath, "objects"), testDirectoryPermissionsConstant))
	require.NoError(testInstance, os.WriteFile(filepath.Join(partialPath, "HEAD"), []byte("ref: refs/heads/main\n"), testFilePermissionsConstant))

	backend := backends.NewBareBackend(filesystem.OSFileSystem{})
	require.True(testInstance, backend.IsRoot(barePath))
	require.False(testInstance, backend.IsRoot(partialPath))
	require.Equal(testInstance, shared.RepoStatusClean, backend.Status(context.Background(), barePath))
}

func TestParseKinds(testInstance *testing.T) {
	testCases := []struct {
		name          string
		names         []string
		expectedKinds []backends.Kind
		expectError   bool
	}{
		{name: "defaults_when_empty", names: nil, expectedKinds: backends.DefaultKinds()},
		{name: "defaults_when_blank", names: []string{"  "}, expectedKinds: backends.DefaultKinds()},
		{name: "normalizes_case", names: []string{" GIT "}, expectedKinds: []backends.Kind{backends.KindGit}},
		{name: "keeps_order", names: []string{"git-bare", "git"}, expectedKinds: []backends.Kind{backends.KindGitBare, backends.KindGit}},
		{name: "rejects_unknown", names: []string{"svn"}, expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			kinds, parseError := backends.ParseKinds(testCase.names)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedKinds, kinds)
		})
	}
}

func TestBuildSkipsDuplicateKinds(testInstance *testing.T) {
	registered := backends.Build(
		[]backends.Kind{backends.KindGit, backends.KindGitBare, backends.KindGit},
		filesystem.OSFileSystem{},
		&gitExecutorStub{},
		zap.NewNop(),
	)

	require.Len(testInstance, registered, 2)
	require.Equal(testInstance, "git", registered[0].Name())
	require.Equal(testInstance, "git-bare", registered[1].Name())
}
