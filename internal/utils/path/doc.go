// Package pathutils normalizes user supplied paths.
package pathutils
