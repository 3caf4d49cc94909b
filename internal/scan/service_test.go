package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/untracked/internal/repos/filesystem"
	"github.com/temirov/untracked/internal/repos/shared"
	"github.com/temirov/untracked/internal/scan"
	pathutils "github.com/temirov/untracked/internal/utils/path"
)

const (
	testUnresolvableRootPrefixConstant = "! unable to resolve root "
	testMissingDirectoryNameConstant   = "missing"
)

type stubTreeClassifier struct {
	statuses        map[string]shared.Status
	nestedFindings  map[string][]shared.Finding
	findings        shared.FindingReporter
	classifiedPaths []string
}

func (classifier *stubTreeClassifier) Classify(_ context.Context, path string) shared.Status {
	classifier.classifiedPaths = append(classifier.classifiedPaths, path)
	for _, finding := range classifier.nestedFindings[path] {
		classifier.findings.Report(finding)
	}
	return classifier.statuses[path]
}

type serviceFixture struct {
	workspace   string
	classifier  *stubTreeClassifier
	output      *strings.Builder
	diagnostics *strings.Builder
	service     *scan.Service
}

func newServiceFixture(testInstance *testing.T) *serviceFixture {
	testInstance.Helper()

	workspace, resolveError := filepath.EvalSymlinks(testInstance.TempDir())
	require.NoError(testInstance, resolveError)

	output := &strings.Builder{}
	diagnostics := &strings.Builder{}
	findings := scan.NewFindingTally(shared.NewWriterFindingReporter(output, nil))
	classifier := &stubTreeClassifier{
		statuses:       map[string]shared.Status{},
		nestedFindings: map[string][]shared.Finding{},
		findings:       findings,
	}

	return &serviceFixture{
		workspace:   workspace,
		classifier:  classifier,
		output:      output,
		diagnostics: diagnostics,
		service: scan.NewService(
			filesystem.OSFileSystem{},
			classifier,
			findings,
			shared.NewWriterReporter(diagnostics),
			pathutils.NewRootArgumentSanitizer(nil),
			zap.NewNop(),
		),
	}
}

func (fixture *serviceFixture) directory(testInstance *testing.T, name string, status shared.Status) string {
	testInstance.Helper()
	directoryPath := filepath.Join(fixture.workspace, name)
	require.NoError(testInstance, os.MkdirAll(directoryPath, 0o755))
	fixture.classifier.statuses[directoryPath] = status
	return directoryPath
}

func TestServiceRunReportsTopLevelVerdicts(testInstance *testing.T) {
	testCases := []struct {
		name           string
		status         shared.Status
		expectedOutput string
		expectClean    bool
	}{
		{name: "untracked_root", status: shared.StatusUntracked, expectedOutput: "u %s\n"},
		{name: "dirty_root", status: shared.Tracked(shared.RepoStatusDirty), expectedOutput: "m %s\n"},
		{name: "clean_root", status: shared.Tracked(shared.RepoStatusClean), expectedOutput: "", expectClean: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fixture := newServiceFixture(testInstance)
			rootPath := fixture.directory(testInstance, testCase.name, testCase.status)

			report, runError := fixture.service.Run(context.Background(), scan.CommandOptions{Roots: []string{rootPath}})

			require.Len(testInstance, report.Results, 1)
			require.Equal(testInstance, rootPath, report.Results[0].Path)
			require.Equal(testInstance, testCase.status, report.Results[0].Status)
			require.Equal(testInstance, testCase.expectClean, report.Clean())
			if testCase.expectClean {
				require.NoError(testInstance, runError)
				require.Empty(testInstance, fixture.output.String())
				return
			}
			require.ErrorIs(testInstance, runError, scan.ErrRootsNotClean)
			require.Equal(testInstance, strings.ReplaceAll(testCase.expectedOutput, "%s", rootPath), fixture.output.String())
		})
	}
}

func TestServiceRunTreatsNestedFindingsAsNotClean(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance)
	rootPath := fixture.directory(testInstance, "workspace", shared.Tracked(shared.RepoStatusClean))
	nestedPath := filepath.Join(rootPath, "scratch")
	fixture.classifier.nestedFindings[rootPath] = []shared.Finding{{Marker: shared.MarkerUntracked, Path: nestedPath}}

	report, runError := fixture.service.Run(context.Background(), scan.CommandOptions{Roots: []string{rootPath}})

	require.ErrorIs(testInstance, runError, scan.ErrRootsNotClean)
	require.True(testInstance, report.Results[0].Status.IsClean())
	require.Equal(testInstance, 1, report.Results[0].FindingCount)
	require.False(testInstance, report.Clean())
	require.Equal(testInstance, "u "+nestedPath+"\n", fixture.output.String())
}

func TestServiceRunContinuesAfterUnresolvableRoot(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance)
	missingRoot := filepath.Join(fixture.workspace, testMissingDirectoryNameConstant)
	cleanRoot := fixture.directory(testInstance, "clean", shared.Tracked(shared.RepoStatusClean))

	report, runError := fixture.service.Run(context.Background(), scan.CommandOptions{Roots: []string{missingRoot, cleanRoot}})

	require.ErrorIs(testInstance, runError, scan.ErrRootsNotClean)
	require.Len(testInstance, report.Results, 2)
	require.Error(testInstance, report.Results[0].Error)
	require.Empty(testInstance, report.Results[0].Path)
	require.False(testInstance, report.Results[0].Clean())
	require.True(testInstance, report.Results[1].Clean())
	require.Equal(testInstance, []string{cleanRoot}, fixture.classifier.classifiedPaths)
	require.True(testInstance, strings.HasPrefix(fixture.diagnostics.String(), testUnresolvableRootPrefixConstant+missingRoot+": "))
	require.Empty(testInstance, fixture.output.String())
}

func TestServiceRunResolvesSymlinkedRoots(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance)
	targetRoot := fixture.directory(testInstance, "target", shared.StatusUntracked)
	linkPath := filepath.Join(fixture.workspace, "link")
	require.NoError(testInstance, os.Symlink(targetRoot, linkPath))

	report, runError := fixture.service.Run(context.Background(), scan.CommandOptions{Roots: []string{linkPath}})

	require.ErrorIs(testInstance, runError, scan.ErrRootsNotClean)
	require.Equal(testInstance, targetRoot, report.Results[0].Path)
	require.Equal(testInstance, linkPath, report.Results[0].Root)
	require.Equal(testInstance, "u "+targetRoot+"\n", fixture.output.String())
}

func TestServiceRunUsesWorkingDirectory(testInstance *testing.T) {
	testInstance.Run("fallback_root", func(testInstance *testing.T) {
		fixture := newServiceFixture(testInstance)
		fixture.classifier.statuses[fixture.workspace] = shared.Tracked(shared.RepoStatusClean)

		report, runError := fixture.service.Run(context.Background(), scan.CommandOptions{WorkingDirectory: fixture.workspace})

		require.NoError(testInstance, runError)
		require.Len(testInstance, report.Results, 1)
		require.Equal(testInstance, fixture.workspace, report.Results[0].Path)
	})

	testInstance.Run("blank_roots_are_not_replaced", func(testInstance *testing.T) {
		fixture := newServiceFixture(testInstance)
		fixture.classifier.statuses[fixture.workspace] = shared.Tracked(shared.RepoStatusClean)

		report, runError := fixture.service.Run(context.Background(), scan.CommandOptions{Roots: []string{"", "   "}, WorkingDirectory: fixture.workspace})

		require.ErrorIs(testInstance, runError, scan.ErrRootsNotClean)
		require.Len(testInstance, report.Results, 2)
		require.ErrorIs(testInstance, report.Results[0].Error, scan.ErrEmptyRoot)
		require.Error(testInstance, report.Results[1].Error)
		require.Empty(testInstance, fixture.classifier.classifiedPaths)
		require.Equal(testInstance, 2, strings.Count(fixture.diagnostics.String(), testUnresolvableRootPrefixConstant))
	})

	testInstance.Run("trailing_space_is_part_of_the_name", func(testInstance *testing.T) {
		fixture := newServiceFixture(testInstance)
		spacedRoot := fixture.directory(testInstance, "dir ", shared.StatusUntracked)
		fixture.directory(testInstance, "dir", shared.Tracked(shared.RepoStatusClean))

		report, runError := fixture.service.Run(context.Background(), scan.CommandOptions{Roots: []string{"dir "}, WorkingDirectory: fixture.workspace})

		require.ErrorIs(testInstance, runError, scan.ErrRootsNotClean)
		require.Equal(testInstance, spacedRoot, report.Results[0].Path)
		require.Equal(testInstance, []string{spacedRoot}, fixture.classifier.classifiedPaths)
	})

	testInstance.Run("relative_roots", func(testInstance *testing.T) {
		fixture := newServiceFixture(testInstance)
		nestedRoot := fixture.directory(testInstance, "nested", shared.Tracked(shared.RepoStatusDirty))

		report, runError := fixture.service.Run(context.Background(), scan.CommandOptions{Roots: []string{"nested"}, WorkingDirectory: fixture.workspace})

		require.ErrorIs(testInstance, runError, scan.ErrRootsNotClean)
		require.Equal(testInstance, nestedRoot, report.Results[0].Path)
		require.Equal(testInstance, "m "+nestedRoot+"\n", fixture.output.String())
	})

	testInstance.Run("missing_working_directory", func(testInstance *testing.T) {
		fixture := newServiceFixture(testInstance)

		_, runError := fixture.service.Run(context.Background(), scan.CommandOptions{})

		require.ErrorIs(testInstance, runError, scan.ErrWorkingDirectoryMissing)
	})
}

func TestServiceRunClassifiesEachRootInOrder(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance)
	firstRoot := fixture.directory(testInstance, "first", shared.StatusUntracked)
	secondRoot := fixture.directory(testInstance, "second", shared.Tracked(shared.RepoStatusDirty))

	_, runError := fixture.service.Run(context.Background(), scan.CommandOptions{Roots: []string{secondRoot, firstRoot}})

	require.ErrorIs(testInstance, runError, scan.ErrRootsNotClean)
	require.Equal(testInstance, []string{secondRoot, firstRoot}, fixture.classifier.classifiedPaths)
	require.Equal(testInstance, "m "+secondRoot+"\nu "+firstRoot+"\n", fixture.output.String())
}

func TestServiceRunStopsWhenContextCancelled(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance)
	rootPath := fixture.directory(testInstance, "root", shared.StatusUntracked)

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	report, runError := fixture.service.Run(cancelledContext, scan.CommandOptions{Roots: []string{rootPath}})

	require.ErrorIs(testInstance, runError, context.Canceled)
	require.Empty(testInstance, report.Results)
	require.Empty(testInstance, fixture.classifier.classifiedPaths)
}
