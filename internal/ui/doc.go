// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger echoes git invocations through a console logger, and
// MarkerStyler colours report markers when the output is a terminal.
package ui
