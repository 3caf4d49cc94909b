package shared

import (
	"fmt"
	"io"
)

const findingLineTemplateConstant = "%s %s\n"

// Reporter emits formatted diagnostics to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
}

// FindingReporter receives paths the scan surfaces to the operator.
type FindingReporter interface {
	Report(finding Finding)
}

// MarkerRenderer decorates a marker before it is written, for example with terminal colours.
type MarkerRenderer func(marker Marker) string

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = io.Discard
	}
	return writerReporter{writer: writer}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	fmt.Fprintf(reporter.writer, format, args...)
}

type writerFindingReporter struct {
	writer         io.Writer
	markerRenderer MarkerRenderer
}

// NewWriterFindingReporter constructs a FindingReporter printing "<marker> <path>" lines.
// A nil renderer prints markers verbatim.
func NewWriterFindingReporter(writer io.Writer, markerRenderer MarkerRenderer) FindingReporter {
	if writer == nil {
		writer = io.Discard
	}
	if markerRenderer == nil {
		markerRenderer = func(marker Marker) string { return string(marker) }
	}
	return writerFindingReporter{writer: writer, markerRenderer: markerRenderer}
}

func (reporter writerFindingReporter) Report(finding Finding) {
	fmt.Fprintf(reporter.writer, findingLineTemplateConstant, reporter.markerRenderer(finding.Marker), finding.Path)
}
