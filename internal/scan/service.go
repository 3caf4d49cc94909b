package scan

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/untracked/internal/repos/shared"
	pathutils "github.com/temirov/untracked/internal/utils/path"
)

const (
	unresolvableRootTemplateConstant = "! unable to resolve root %s: %v\n"
	rootClassifiedMessageConstant    = "root classified"
	rootUnresolvableMessageConstant  = "root unresolvable"
	scanCompletedMessageConstant     = "scan completed"
	logFieldRootConstant             = "root"
	logFieldPathConstant             = "path"
	logFieldStatusConstant           = "status"
	logFieldRootCountConstant        = "root_count"
	logFieldCleanConstant            = "clean"
	logFieldFindingCountConstant     = "finding_count"
)

// Service drives a scan over a list of roots.
type Service struct {
	fileSystem  shared.FileSystem
	classifier  TreeClassifier
	findings    *FindingTally
	diagnostics shared.Reporter
	sanitizer   *pathutils.RootArgumentSanitizer
	logger      *zap.Logger
}

// NewService constructs a Service. The classifier should report through the same findings tally
// so that nested findings mark their root as not clean. Resolution failures go to diagnostics.
func NewService(fileSystem shared.FileSystem, classifier TreeClassifier, findings *FindingTally, diagnostics shared.Reporter, sanitizer *pathutils.RootArgumentSanitizer, logger *zap.Logger) *Service {
	if findings == nil {
		findings = NewFindingTally(nil)
	}
	if diagnostics == nil {
		diagnostics = shared.NewWriterReporter(nil)
	}
	if sanitizer == nil {
		sanitizer = pathutils.NewRootArgumentSanitizer(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fileSystem:  fileSystem,
		classifier:  classifier,
		findings:    findings,
		diagnostics: diagnostics,
		sanitizer:   sanitizer,
		logger:      logger,
	}
}

// Run classifies every root once, in order, and prints the top-level verdict of each.
//
// The working directory is scanned only when no root is given at all. Unresolvable roots,
// including blank arguments, are reported and counted as not clean without stopping the scan.
// The returned error is ErrRootsNotClean when any root is not clean, including a clean
// root that had findings reported beneath it.
func (service *Service) Run(executionContext context.Context, options CommandOptions) (Report, error) {
	roots := service.sanitizer.Sanitize(options.Roots)
	if len(options.Roots) == 0 {
		if len(options.WorkingDirectory) == 0 {
			return Report{}, ErrWorkingDirectoryMissing
		}
		roots = []string{options.WorkingDirectory}
	}

	report := Report{Results: make([]RootResult, 0, len(roots))}
	for _, root := range roots {
		if contextError := executionContext.Err(); contextError != nil {
			return report, contextError
		}
		report.Results = append(report.Results, service.scanRoot(executionContext, root, options.WorkingDirectory))
	}

	reportClean := report.Clean()
	service.logger.Debug(
		scanCompletedMessageConstant,
		zap.Int(logFieldRootCountConstant, len(report.Results)),
		zap.Bool(logFieldCleanConstant, reportClean),
	)

	if !reportClean {
		return report, ErrRootsNotClean
	}
	return report, nil
}

func (service *Service) scanRoot(executionContext context.Context, root string, workingDirectory string) RootResult {
	canonicalPath, resolveError := service.canonicalize(root, workingDirectory)
	if resolveError != nil {
		service.logger.Warn(rootUnresolvableMessageConstant, zap.String(logFieldRootConstant, root), zap.Error(resolveError))
		service.diagnostics.Printf(unresolvableRootTemplateConstant, root, resolveError)
		return RootResult{Root: root, Error: resolveError}
	}

	findingsBefore := service.findings.Count()
	status := service.classifier.Classify(executionContext, canonicalPath)
	if marker, reportable := status.Marker(); reportable {
		service.findings.Report(shared.Finding{Marker: marker, Path: canonicalPath})
	}
	findingCount := service.findings.Count() - findingsBefore

	service.logger.Debug(
		rootClassifiedMessageConstant,
		zap.String(logFieldRootConstant, root),
		zap.String(logFieldPathConstant, canonicalPath),
		zap.Stringer(logFieldStatusConstant, status),
		zap.Int(logFieldFindingCountConstant, findingCount),
	)

	return RootResult{Root: root, Path: canonicalPath, Status: status, FindingCount: findingCount}
}

func (service *Service) canonicalize(root string, workingDirectory string) (string, error) {
	if len(root) == 0 {
		return "", ErrEmptyRoot
	}

	candidate := root
	if !filepath.IsAbs(candidate) && len(workingDirectory) > 0 {
		candidate = filepath.Join(workingDirectory, candidate)
	}

	absolutePath, absError := service.fileSystem.Abs(candidate)
	if absError != nil {
		return "", absError
	}
	return service.fileSystem.EvalSymlinks(absolutePath)
}
