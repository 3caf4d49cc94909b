package execshell_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/untracked/internal/execshell"
)

const (
	missingExecutableNameConstant = "untracked-test-missing-executable"
	shellExecutableNameConstant   = "sh"
	inheritedVariableNameConstant = "UNTRACKED_TEST_INHERITED"
)

func TestOSCommandRunnerReportsSpawnFailure(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()

	executionResult, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandName(missingExecutableNameConstant),
		Details: execshell.CommandDetails{Arguments: []string{"status"}},
	})

	require.Error(testInstance, runError)
	require.Equal(testInstance, execshell.ExecutionResult{}, executionResult)
}

func TestOSCommandRunnerAddsEnvironmentVariables(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(shellExecutableNameConstant); lookupError != nil {
		testInstance.Skip("sh is not available")
	}
	testInstance.Setenv(inheritedVariableNameConstant, "inherited")

	executionResult, runError := execshell.NewOSCommandRunner().Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName(shellExecutableNameConstant),
		Details: execshell.CommandDetails{
			Arguments:            []string{"-c", "printf '%s %s' \"$GIT_OPTIONAL_LOCKS\" \"$" + inheritedVariableNameConstant + "\""},
			EnvironmentVariables: map[string]string{"GIT_OPTIONAL_LOCKS": "0"},
		},
	})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, 0, executionResult.ExitCode)
	require.Equal(testInstance, "0 inherited", executionResult.StandardOutput)
}

func TestOSCommandRunnerReportsExitCode(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(shellExecutableNameConstant); lookupError != nil {
		testInstance.Skip("sh is not available")
	}

	executionResult, runError := execshell.NewOSCommandRunner().Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandName(shellExecutableNameConstant),
		Details: execshell.CommandDetails{Arguments: []string{"-c", "exit 3"}},
	})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, 3, executionResult.ExitCode)
	require.Empty(testInstance, executionResult.StandardOutput)
}
