package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/temirov/untracked/internal/repos/shared"
	"github.com/temirov/untracked/internal/utils/flags"
)

const (
	colorModeAutoStringConstant   = "auto"
	colorModeAlwaysStringConstant = "always"
	colorModeNeverStringConstant  = "never"
	unsupportedColorModeTemplate  = "unsupported color mode: %w"
	untrackedMarkerColorConstant  = "3"
	modifiedMarkerColorConstant   = "1"
)

// ColorMode selects when report markers are coloured.
type ColorMode string

// Supported colour modes.
const (
	ColorModeAuto   ColorMode = ColorMode(colorModeAutoStringConstant)
	ColorModeAlways ColorMode = ColorMode(colorModeAlwaysStringConstant)
	ColorModeNever  ColorMode = ColorMode(colorModeNeverStringConstant)
)

// ColorModeChoices lists the accepted colour modes, default first.
func ColorModeChoices() []string {
	return []string{colorModeAutoStringConstant, colorModeAlwaysStringConstant, colorModeNeverStringConstant}
}

// ParseColorMode validates a configured colour mode. An empty value means ColorModeAuto.
func ParseColorMode(value string) (ColorMode, error) {
	if len(strings.TrimSpace(value)) == 0 {
		return ColorModeAuto, nil
	}
	normalized, normalizeError := flags.NormalizeChoice(value, ColorModeChoices())
	if normalizeError != nil {
		return "", fmt.Errorf(unsupportedColorModeTemplate, normalizeError)
	}
	return ColorMode(normalized), nil
}

// TerminalDetector reports whether writer is attached to a terminal.
type TerminalDetector func(writer io.Writer) bool

// DetectTerminal reports whether writer is a file descriptor attached to a terminal.
func DetectTerminal(writer io.Writer) bool {
	descriptor, hasDescriptor := writer.(interface{ Fd() uintptr })
	if !hasDescriptor {
		return false
	}
	return term.IsTerminal(int(descriptor.Fd()))
}

// MarkerStyler renders report markers, coloured or plain depending on the colour mode.
type MarkerStyler struct {
	styles map[shared.Marker]lipgloss.Style
}

// NewMarkerStyler constructs a styler for output written to writer.
func NewMarkerStyler(writer io.Writer, mode ColorMode, detector TerminalDetector) *MarkerStyler {
	if detector == nil {
		detector = DetectTerminal
	}

	colorProfile := termenv.Ascii
	switch mode {
	case ColorModeAlways:
		colorProfile = termenv.ANSI
	case ColorModeAuto:
		if detector(writer) {
			colorProfile = termenv.ANSI
		}
	}

	renderer := lipgloss.NewRenderer(writer)
	renderer.SetColorProfile(colorProfile)

	return &MarkerStyler{
		styles: map[shared.Marker]lipgloss.Style{
			shared.MarkerUntracked: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(untrackedMarkerColorConstant)),
			shared.MarkerModified:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(modifiedMarkerColorConstant)),
		},
	}
}

// Render returns the marker decorated for the configured output.
func (styler *MarkerStyler) Render(marker shared.Marker) string {
	if styler == nil {
		return string(marker)
	}
	style, styled := styler.styles[marker]
	if !styled {
		return string(marker)
	}
	return style.Render(string(marker))
}
