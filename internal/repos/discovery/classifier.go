package discovery

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/untracked/internal/repos/shared"
)

const (
	unreadableDirectoryTemplateConstant = "! unable to read directory %s\n"
	symlinkCycleTemplateConstant        = "! symlink cycle detected at %s\n"
	repositoryClassifiedMessageConstant = "repository classified"
	directoryClassifiedMessageConstant  = "directory classified"
	directoryUnreadableMessageConstant  = "directory unreadable"
	symlinkCycleMessageConstant         = "symlink cycle detected"
	logFieldPathConstant                = "path"
	logFieldBackendConstant             = "backend"
	logFieldStatusConstant              = "status"
	logFieldQueuedFindingsConstant      = "queued_findings"
	logFieldAnyRepositoriesConstant     = "any_repositories"
)

// TreeClassifier performs the recursive repository classification of a directory tree.
type TreeClassifier struct {
	fileSystem  shared.FileSystem
	backends    []shared.RepositoryBackend
	findings    shared.FindingReporter
	diagnostics shared.Reporter
	logger      *zap.Logger
}

// NewTreeClassifier constructs a classifier consulting backends in the given order.
func NewTreeClassifier(fileSystem shared.FileSystem, backends []shared.RepositoryBackend, findings shared.FindingReporter, diagnostics shared.Reporter, logger *zap.Logger) *TreeClassifier {
	if findings == nil {
		findings = shared.NewWriterFindingReporter(nil, nil)
	}
	if diagnostics == nil {
		diagnostics = shared.NewWriterReporter(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeClassifier{
		fileSystem:  fileSystem,
		backends:    append([]shared.RepositoryBackend{}, backends...),
		findings:    findings,
		diagnostics: diagnostics,
		logger:      logger,
	}
}

// Classify returns the Status of path, reporting untracked and dirty descendants as it goes.
//
// Descendants are reported only when path contains at least one repository; otherwise the
// whole subtree is Untracked and reporting it is left to the caller.
func (classifier *TreeClassifier) Classify(executionContext context.Context, path string) shared.Status {
	return classifier.classify(executionContext, path, make(map[string]struct{}))
}

func (classifier *TreeClassifier) classify(executionContext context.Context, path string, activeDescent map[string]struct{}) shared.Status {
	pathInfo, statError := classifier.fileSystem.Stat(path)
	if statError != nil || !pathInfo.IsDir() {
		return shared.StatusUntracked
	}

	for _, backend := range classifier.backends {
		if !backend.IsRoot(path) {
			continue
		}
		status := shared.Tracked(backend.Status(executionContext, path))
		classifier.logger.Debug(
			repositoryClassifiedMessageConstant,
			zap.String(logFieldPathConstant, path),
			zap.String(logFieldBackendConstant, backend.Name()),
			zap.Stringer(logFieldStatusConstant, status),
		)
		return status
	}

	canonicalPath := classifier.canonicalPath(path)
	if _, onDescent := activeDescent[canonicalPath]; onDescent {
		classifier.diagnostics.Printf(symlinkCycleTemplateConstant, path)
		classifier.logger.Warn(symlinkCycleMessageConstant, zap.String(logFieldPathConstant, path))
		return shared.StatusUntracked
	}

	entries, readError := classifier.fileSystem.ReadDir(path)
	if readError != nil {
		classifier.diagnostics.Printf(unreadableDirectoryTemplateConstant, path)
		classifier.logger.Warn(directoryUnreadableMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(readError))
		return shared.StatusUntracked
	}

	activeDescent[canonicalPath] = struct{}{}
	defer delete(activeDescent, canonicalPath)

	anyRepositories := false
	var queuedFindings []shared.Finding
	for _, entry := range entries {
		childPath := filepath.Join(path, entry.Name())
		childStatus := classifier.classify(executionContext, childPath, activeDescent)
		if childStatus.IsTracked() {
			anyRepositories = true
		}
		if marker, reportable := childStatus.Marker(); reportable {
			queuedFindings = append(queuedFindings, shared.Finding{Marker: marker, Path: childPath})
		}
	}

	classifier.logger.Debug(
		directoryClassifiedMessageConstant,
		zap.String(logFieldPathConstant, path),
		zap.Bool(logFieldAnyRepositoriesConstant, anyRepositories),
		zap.Int(logFieldQueuedFindingsConstant, len(queuedFindings)),
	)

	if !anyRepositories {
		return shared.StatusUntracked
	}

	for _, finding := range queuedFindings {
		classifier.findings.Report(finding)
	}
	return shared.Tracked(shared.RepoStatusClean)
}

func (classifier *TreeClassifier) canonicalPath(path string) string {
	resolvedPath, resolveError := classifier.fileSystem.EvalSymlinks(path)
	if resolveError != nil {
		return filepath.Clean(path)
	}
	return resolvedPath
}
